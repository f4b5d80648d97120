package analytics

// Summary is the workforce dashboard payload: per-entity totals plus task
// breakdowns, each computed under the same scope and relation narrowing as
// the corresponding list endpoint.
type Summary struct {
	Patients        int64            `json:"patients"`
	Shifts          int64            `json:"shifts"`
	LeaveRequests   int64            `json:"leave_requests"`
	Tasks           int64            `json:"tasks"`
	SwapRequests    int64            `json:"swap_requests"`
	Handovers       int64            `json:"handovers"`
	TasksByStatus   map[string]int64 `json:"tasks_by_status"`
	TasksByPriority map[string]int64 `json:"tasks_by_priority"`
}
