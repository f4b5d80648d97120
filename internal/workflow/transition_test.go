package workflow_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/workflow"
)

func TestWorkflow(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Workflow Suite")
}

func staffActor(id string) *accesscontrol.Actor {
	hosp := "hosp-1"
	return &accesscontrol.Actor{ID: id, Role: accesscontrol.RoleNurse, HospitalID: &hosp, Active: true}
}

func reviewerActor(id string) *accesscontrol.Actor {
	hosp := "hosp-1"
	return &accesscontrol.Actor{ID: id, Role: accesscontrol.RoleHOD, HospitalID: &hosp, Active: true}
}

func errCode(err error) internal.ErrorCode {
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

var _ = Describe("Transition", func() {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	Describe("staff owners", func() {
		It("should cancel their own pending request without a review stamp", func() {
			decision, err := workflow.Transition(staffActor("u-1"), "u-1", workflow.StatusPending, workflow.StatusCancelled, now)

			Expect(err).ToNot(HaveOccurred())
			Expect(decision.Status).To(Equal(workflow.StatusCancelled))
			Expect(decision.ReviewedBy).To(BeNil())
			Expect(decision.ReviewedAt).To(BeNil())
		})

		It("should be forbidden from approving their own request", func() {
			_, err := workflow.Transition(staffActor("u-1"), "u-1", workflow.StatusPending, workflow.StatusApproved, now)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("only cancellation is allowed"))
		})

		It("should not cancel an already reviewed request", func() {
			_, err := workflow.Transition(staffActor("u-1"), "u-1", workflow.StatusApproved, workflow.StatusCancelled, now)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("only pending requests can be cancelled"))
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})
	})

	Describe("staff non-owners", func() {
		It("should be forbidden even as the named counterpart", func() {
			_, err := workflow.Transition(staffActor("u-2"), "u-1", workflow.StatusPending, workflow.StatusCancelled, now)

			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal(internal.ErrCodeRelationViolation))
		})
	})

	Describe("reviewers", func() {
		It("should approve a pending request with a review stamp", func() {
			decision, err := workflow.Transition(reviewerActor("boss"), "u-1", workflow.StatusPending, workflow.StatusApproved, now)

			Expect(err).ToNot(HaveOccurred())
			Expect(decision.Status).To(Equal(workflow.StatusApproved))
			Expect(decision.ReviewedBy).ToNot(BeNil())
			Expect(*decision.ReviewedBy).To(Equal("boss"))
			Expect(decision.ReviewedAt).ToNot(BeNil())
			Expect(*decision.ReviewedAt).To(Equal(now))
		})

		It("should reject and cancel pending requests too", func() {
			for _, target := range []workflow.Status{workflow.StatusRejected, workflow.StatusCancelled} {
				decision, err := workflow.Transition(reviewerActor("boss"), "u-1", workflow.StatusPending, target, now)

				Expect(err).ToNot(HaveOccurred())
				Expect(decision.Status).To(Equal(target))
				Expect(decision.ReviewedBy).ToNot(BeNil())
			}
		})

		It("should not move a request back to pending", func() {
			_, err := workflow.Transition(reviewerActor("boss"), "u-1", workflow.StatusApproved, workflow.StatusPending, now)

			Expect(err).To(HaveOccurred())
			Expect(errCode(err)).To(Equal(internal.ErrCodeInvalidStatus))
		})

		It("should not re-review a terminal request", func() {
			_, err := workflow.Transition(reviewerActor("boss"), "u-1", workflow.StatusRejected, workflow.StatusApproved, now)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("only pending requests can be reviewed"))
		})
	})

	It("should reject unknown target statuses", func() {
		_, err := workflow.Transition(reviewerActor("boss"), "u-1", workflow.StatusPending, workflow.Status("parked"), now)

		Expect(err).To(HaveOccurred())
		Expect(errCode(err)).To(Equal(internal.ErrCodeInvalidStatus))
	})

	It("should reject a nil actor", func() {
		_, err := workflow.Transition(nil, "u-1", workflow.StatusPending, workflow.StatusApproved, now)

		Expect(err).To(HaveOccurred())
	})

	It("should mark every non-pending status terminal", func() {
		Expect(workflow.StatusPending.Terminal()).To(BeFalse())
		Expect(workflow.StatusApproved.Terminal()).To(BeTrue())
		Expect(workflow.StatusRejected.Terminal()).To(BeTrue())
		Expect(workflow.StatusCancelled.Terminal()).To(BeTrue())
	})
})
