package accesscontrol_test

import (
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
)

func TestAccessControl(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AccessControl Suite")
}

func strPtr(s string) *string { return &s }

func makeActor(role accesscontrol.Role, hospitalID string) *accesscontrol.Actor {
	a := &accesscontrol.Actor{
		ID:     "actor-1",
		Role:   role,
		Active: true,
	}
	if hospitalID != "" {
		a.HospitalID = strPtr(hospitalID)
	}
	return a
}

func appErrorCode(err error) internal.ErrorCode {
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

var _ = Describe("ResolveScope", func() {
	Context("with a super admin", func() {
		It("should be unrestricted without a requested hospital", func() {
			scope, err := accesscontrol.ResolveScope(makeActor(accesscontrol.RoleSuperAdmin, ""), "")

			Expect(err).ToNot(HaveOccurred())
			Expect(scope.Unrestricted()).To(BeTrue())
			Expect(scope.Allows("any-hospital")).To(BeTrue())
		})

		It("should narrow to the requested hospital", func() {
			scope, err := accesscontrol.ResolveScope(makeActor(accesscontrol.RoleSuperAdmin, ""), "hosp-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(scope.Unrestricted()).To(BeFalse())
			Expect(scope.Allows("hosp-1")).To(BeTrue())
			Expect(scope.Allows("hosp-2")).To(BeFalse())
		})
	})

	Context("with a tenant-bound actor", func() {
		It("should pin the scope to the actor's hospital", func() {
			scope, err := accesscontrol.ResolveScope(makeActor(accesscontrol.RoleAdmin, "hosp-1"), "")

			Expect(err).ToNot(HaveOccurred())
			Expect(scope.Allows("hosp-1")).To(BeTrue())
			Expect(scope.Allows("hosp-2")).To(BeFalse())
		})

		It("should accept a matching requested hospital", func() {
			scope, err := accesscontrol.ResolveScope(makeActor(accesscontrol.RoleDoctor, "hosp-1"), "hosp-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(scope.Allows("hosp-1")).To(BeTrue())
		})

		It("should reject a mismatched requested hospital", func() {
			_, err := accesscontrol.ResolveScope(makeActor(accesscontrol.RoleDoctor, "hosp-1"), "hosp-2")

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("hospital access denied"))
			Expect(appErrorCode(err)).To(Equal(internal.ErrCodeTenantMismatch))
		})

		It("should reject an actor with no hospital binding", func() {
			_, err := accesscontrol.ResolveScope(makeActor(accesscontrol.RoleNurse, ""), "")

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("hospital scope required"))
			Expect(appErrorCode(err)).To(Equal(internal.ErrCodeNoTenantScope))
		})
	})

	Context("with no actor", func() {
		It("should return an authentication error", func() {
			_, err := accesscontrol.ResolveScope(nil, "")

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeUnauthenticated))
		})
	})
})

var _ = Describe("Role capabilities", func() {
	It("should mark doctor and nurse as staff", func() {
		Expect(accesscontrol.RoleDoctor.IsStaff()).To(BeTrue())
		Expect(accesscontrol.RoleNurse.IsStaff()).To(BeTrue())
		Expect(accesscontrol.RoleHOD.IsStaff()).To(BeFalse())
		Expect(accesscontrol.RoleAdmin.IsStaff()).To(BeFalse())
	})

	It("should mark super_admin, admin and hod as reviewers", func() {
		Expect(accesscontrol.RoleSuperAdmin.IsReviewer()).To(BeTrue())
		Expect(accesscontrol.RoleAdmin.IsReviewer()).To(BeTrue())
		Expect(accesscontrol.RoleHOD.IsReviewer()).To(BeTrue())
		Expect(accesscontrol.RoleDoctor.IsReviewer()).To(BeFalse())
	})

	It("should restrict hospital management to super_admin", func() {
		Expect(accesscontrol.RoleSuperAdmin.CanManageHospitals()).To(BeTrue())
		Expect(accesscontrol.RoleAdmin.CanManageHospitals()).To(BeFalse())
	})

	It("should keep shift authoring away from clinical staff", func() {
		Expect(accesscontrol.RoleHOD.CanCreateShifts()).To(BeTrue())
		Expect(accesscontrol.RoleDoctor.CanCreateShifts()).To(BeFalse())
		Expect(accesscontrol.RoleNurse.CanCreateShifts()).To(BeFalse())
	})

	It("should reject unknown roles", func() {
		Expect(accesscontrol.Role("intern").Valid()).To(BeFalse())
	})
})

var _ = Describe("Relation narrowing", func() {
	It("should narrow staff to their participant columns", func() {
		actor := makeActor(accesscontrol.RoleDoctor, "hosp-1")
		filter := accesscontrol.TaskRelation.Narrow(actor)

		Expect(filter.Empty()).To(BeFalse())
		Expect(filter.ActorID).To(Equal(actor.ID))
		Expect(filter.Columns).To(ConsistOf("created_by", "assigned_to"))
	})

	It("should not narrow reviewers", func() {
		actor := makeActor(accesscontrol.RoleAdmin, "hosp-1")

		Expect(accesscontrol.TaskRelation.Narrow(actor).Empty()).To(BeTrue())
	})

	It("should not narrow entities without relations", func() {
		actor := makeActor(accesscontrol.RoleNurse, "hosp-1")

		Expect(accesscontrol.NoRelation.Narrow(actor).Empty()).To(BeTrue())
	})

	It("should match participants across nil references", func() {
		Expect(accesscontrol.IsParticipant("u-1", strPtr("u-1"), nil)).To(BeTrue())
		Expect(accesscontrol.IsParticipant("u-1", nil, strPtr("u-2"))).To(BeFalse())
		Expect(accesscontrol.IsParticipant("u-1")).To(BeFalse())
	})
})
