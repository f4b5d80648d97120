package main

import "github.com/frahmantamala/hospital-workforce/cmd"

func main() {
	cmd.Execute()
}
