package internal_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hospital-workforce/internal"
)

func TestInternal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal Suite")
}

var _ = Describe("WithTimeout", func() {
	It("should honor an explicit duration", func() {
		ctx, cancel := internal.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		deadline, ok := ctx.Deadline()
		Expect(ok).To(BeTrue())
		Expect(time.Until(deadline)).To(BeNumerically("<=", 100*time.Millisecond))
	})

	It("should default when the duration is zero or negative", func() {
		for _, d := range []time.Duration{0, -time.Second} {
			ctx, cancel := internal.WithTimeout(context.Background(), d)

			deadline, ok := ctx.Deadline()
			Expect(ok).To(BeTrue())
			Expect(time.Until(deadline)).To(BeNumerically(">", 4*time.Second))
			Expect(time.Until(deadline)).To(BeNumerically("<=", 5*time.Second))
			cancel()
		}
	})
})
