package swap_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/shift"
	"github.com/frahmantamala/hospital-workforce/internal/swap"
	"github.com/frahmantamala/hospital-workforce/internal/workflow"
)

func TestSwap(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swap Suite")
}

type mockSwapRepository struct {
	swaps       map[string]*swap.SwapRequest
	listResult  []*swap.SwapRequest
	listTotal   int64
	createError error
	statusStale bool
}

func newMockSwapRepository() *mockSwapRepository {
	return &mockSwapRepository{swaps: make(map[string]*swap.SwapRequest)}
}

func (m *mockSwapRepository) Create(_ context.Context, sr *swap.SwapRequest) error {
	if m.createError != nil {
		return m.createError
	}
	m.swaps[sr.ID] = sr
	return nil
}

func (m *mockSwapRepository) GetByID(_ context.Context, id string) (*swap.SwapRequest, error) {
	sr, ok := m.swaps[id]
	if !ok {
		return nil, internal.NewNotFoundError("swap request not found", internal.ErrCodeSwapNotFound)
	}
	return sr, nil
}

func (m *mockSwapRepository) List(_ context.Context, _ accesscontrol.Scope, _ accesscontrol.RelationFilter, _ swap.ListSwapsFilter) ([]*swap.SwapRequest, int64, error) {
	return m.listResult, m.listTotal, nil
}

func (m *mockSwapRepository) UpdateStatus(_ context.Context, id string, decision workflow.Decision) (bool, error) {
	if m.statusStale {
		return false, nil
	}
	if sr, ok := m.swaps[id]; ok {
		sr.Status = decision.Status
		sr.ReviewedBy = decision.ReviewedBy
		sr.ReviewedAt = decision.ReviewedAt
	}
	return true, nil
}

type mockShiftLookup struct {
	shifts map[string]*shift.Shift
}

func (m *mockShiftLookup) GetByID(_ context.Context, id string) (*shift.Shift, error) {
	sh, ok := m.shifts[id]
	if !ok {
		return nil, internal.NewNotFoundError("shift not found", internal.ErrCodeShiftNotFound)
	}
	return sh, nil
}

func strPtr(s string) *string { return &s }

func actorWith(role accesscontrol.Role, id, hospitalID string) *accesscontrol.Actor {
	a := &accesscontrol.Actor{ID: id, Role: role, Active: true}
	if hospitalID != "" {
		a.HospitalID = strPtr(hospitalID)
	}
	return a
}

var _ = Describe("SwapService", func() {
	var (
		service   *swap.Service
		mockRepo  *mockSwapRepository
		lookup    *mockShiftLookup
		ctx       context.Context
		demoShift *shift.Shift
	)

	BeforeEach(func() {
		mockRepo = newMockSwapRepository()
		demoShift = &shift.Shift{
			ID:             "shift-1",
			HospitalID:     "hosp-1",
			AssignedUserID: strPtr("nurse-1"),
			ShiftType:      "night",
			StartAt:        time.Now().Add(24 * time.Hour),
			EndAt:          time.Now().Add(32 * time.Hour),
			IsActive:       true,
		}
		lookup = &mockShiftLookup{shifts: map[string]*shift.Shift{demoShift.ID: demoShift}}

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = swap.NewService(mockRepo, lookup, accesscontrol.New(db, testLogger), testLogger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("should let the assigned staff member offer their shift", func() {
			actor := actorWith(accesscontrol.RoleNurse, "nurse-1", "hosp-1")

			result, err := service.Create(ctx, actor, swap.CreateSwapDTO{ShiftID: "shift-1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ShiftID).To(Equal("shift-1"))
			Expect(result.RequesterID).To(Equal("nurse-1"))
			Expect(result.Status).To(Equal(workflow.StatusPending))
		})

		It("should forbid staff offering a shift assigned to someone else", func() {
			actor := actorWith(accesscontrol.RoleNurse, "nurse-2", "hosp-1")

			_, err := service.Create(ctx, actor, swap.CreateSwapDTO{ShiftID: "shift-1"})

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("only the assigned user can offer this shift"))
		})

		It("should forbid staff offering an unassigned shift", func() {
			demoShift.AssignedUserID = nil
			actor := actorWith(accesscontrol.RoleNurse, "nurse-1", "hosp-1")

			_, err := service.Create(ctx, actor, swap.CreateSwapDTO{ShiftID: "shift-1"})

			Expect(err).To(HaveOccurred())
		})

		It("should reject a shift from another hospital", func() {
			actor := actorWith(accesscontrol.RoleNurse, "nurse-1", "hosp-2")

			_, err := service.Create(ctx, actor, swap.CreateSwapDTO{ShiftID: "shift-1"})

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("hospital access denied"))
		})

		It("should surface a missing shift as not found", func() {
			actor := actorWith(accesscontrol.RoleNurse, "nurse-1", "hosp-1")

			_, err := service.Create(ctx, actor, swap.CreateSwapDTO{ShiftID: "shift-404"})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeNotFound))
		})

		It("should require a shift id", func() {
			actor := actorWith(accesscontrol.RoleNurse, "nurse-1", "hosp-1")

			_, err := service.Create(ctx, actor, swap.CreateSwapDTO{})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("List", func() {
		It("should wrap results in a pagination envelope", func() {
			mockRepo.listResult = []*swap.SwapRequest{
				{ID: "swap-1"}, {ID: "swap-2"},
			}
			mockRepo.listTotal = 5
			actor := actorWith(accesscontrol.RoleAdmin, "admin-1", "hosp-1")

			page, err := service.List(ctx, actor, swap.ListSwapsFilter{Limit: 2, Offset: 0})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Items).To(HaveLen(2))
			Expect(page.Total).To(Equal(int64(5)))
			Expect(page.Limit).To(Equal(2))
			Expect(page.HasMore).To(BeTrue())
		})

		It("should report no more pages at the tail", func() {
			mockRepo.listResult = []*swap.SwapRequest{{ID: "swap-5"}}
			mockRepo.listTotal = 5
			actor := actorWith(accesscontrol.RoleAdmin, "admin-1", "hosp-1")

			page, err := service.List(ctx, actor, swap.ListSwapsFilter{Limit: 2, Offset: 4})

			Expect(err).ToNot(HaveOccurred())
			Expect(page.HasMore).To(BeFalse())
		})
	})

	Describe("Transition", func() {
		BeforeEach(func() {
			mockRepo.swaps["swap-1"] = &swap.SwapRequest{
				ID:          "swap-1",
				ShiftID:     "shift-1",
				RequesterID: "nurse-1",
				Status:      workflow.StatusPending,
				IsActive:    true,
			}
		})

		It("should let a reviewer approve through the shift's tenant", func() {
			actor := actorWith(accesscontrol.RoleAdmin, "admin-1", "hosp-1")

			result, err := service.Transition(ctx, actor, "swap-1", swap.TransitionDTO{Status: workflow.StatusApproved})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(workflow.StatusApproved))
			Expect(result.ReviewedBy).ToNot(BeNil())
		})

		It("should let the requester cancel while pending", func() {
			actor := actorWith(accesscontrol.RoleNurse, "nurse-1", "hosp-1")

			result, err := service.Transition(ctx, actor, "swap-1", swap.TransitionDTO{Status: workflow.StatusCancelled})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Status).To(Equal(workflow.StatusCancelled))
			Expect(result.ReviewedBy).To(BeNil())
		})

		It("should forbid the counterpart from deciding", func() {
			mockRepo.swaps["swap-1"].RequestedWithUserID = strPtr("nurse-2")
			actor := actorWith(accesscontrol.RoleNurse, "nurse-2", "hosp-1")

			_, err := service.Transition(ctx, actor, "swap-1", swap.TransitionDTO{Status: workflow.StatusApproved})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		})

		It("should surface a conflict when the row is no longer pending", func() {
			mockRepo.statusStale = true
			actor := actorWith(accesscontrol.RoleAdmin, "admin-1", "hosp-1")

			_, err := service.Transition(ctx, actor, "swap-1", swap.TransitionDTO{Status: workflow.StatusApproved})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeTransitionConflict))
		})
	})
})
