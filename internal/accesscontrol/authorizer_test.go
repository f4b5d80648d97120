package accesscontrol_test

import (
	"context"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
)

var _ = Describe("Authorizer", func() {
	var (
		db    *gorm.DB
		authz *accesscontrol.Authorizer
		ctx   context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.Exec(`CREATE TABLE patients (id TEXT PRIMARY KEY, hospital_id TEXT NOT NULL)`).Error
		Expect(err).NotTo(HaveOccurred())
		err = db.Exec(`INSERT INTO patients (id, hospital_id) VALUES ('pat-1', 'hosp-1')`).Error
		Expect(err).NotTo(HaveOccurred())

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		authz = accesscontrol.New(db, logger)
		ctx = context.Background()
	})

	Describe("Require", func() {
		It("should reject a nil actor", func() {
			err := authz.Require(nil)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeUnauthenticated))
		})

		It("should reject a deactivated actor regardless of role", func() {
			actor := makeActor(accesscontrol.RoleSuperAdmin, "")
			actor.Active = false

			err := authz.Require(actor)

			Expect(err).To(HaveOccurred())
			Expect(appErrorCode(err)).To(Equal(internal.ErrCodeProfileInactive))
		})

		It("should accept an active actor with a known role", func() {
			Expect(authz.Require(makeActor(accesscontrol.RoleNurse, "hosp-1"))).To(Succeed())
		})
	})

	Describe("EnsureSameTenant", func() {
		It("should pass when the referenced row is in the expected hospital", func() {
			err := authz.EnsureSameTenant(ctx, "patients", "patient_id", "pat-1", "hosp-1")

			Expect(err).NotTo(HaveOccurred())
		})

		It("should fail validation when the referenced row is elsewhere", func() {
			err := authz.EnsureSameTenant(ctx, "patients", "patient_id", "pat-1", "hosp-2")

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(appErr.Message).To(ContainSubstring("does not belong to hospital"))
		})

		It("should fail validation when the referenced row is missing", func() {
			err := authz.EnsureSameTenant(ctx, "patients", "patient_id", "pat-404", "hosp-1")

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("should fail validation when the referenced row has no tenant", func() {
			err := db.Exec(`CREATE TABLE profiles (id TEXT PRIMARY KEY, hospital_id TEXT)`).Error
			Expect(err).NotTo(HaveOccurred())
			err = db.Exec(`INSERT INTO profiles (id, hospital_id) VALUES ('root-1', NULL)`).Error
			Expect(err).NotTo(HaveOccurred())

			err = authz.EnsureSameTenant(ctx, "profiles", "assigned_to", "root-1", "hosp-1")

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(appErr.Message).To(ContainSubstring("does not belong to hospital"))
		})
	})

	Describe("CanAccessRecord", func() {
		It("should allow super_admin across tenants", func() {
			actor := makeActor(accesscontrol.RoleSuperAdmin, "")

			err := authz.CanAccessRecord(actor, "hosp-2", accesscontrol.NoRelation)

			Expect(err).NotTo(HaveOccurred())
		})

		It("should refuse a tenant-bound actor without a hospital binding", func() {
			actor := makeActor(accesscontrol.RoleNurse, "")

			err := authz.CanAccessRecord(actor, "hosp-1", accesscontrol.NoRelation)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("hospital scope required"))
		})

		It("should forbid cross-tenant access for tenant-bound roles", func() {
			actor := makeActor(accesscontrol.RoleAdmin, "hosp-1")

			err := authz.CanAccessRecord(actor, "hosp-2", accesscontrol.NoRelation)

			Expect(err).To(HaveOccurred())
			Expect(appErrorCode(err)).To(Equal(internal.ErrCodeTenantMismatch))
		})

		It("should forbid staff who are not participants", func() {
			actor := makeActor(accesscontrol.RoleDoctor, "hosp-1")
			other := "someone-else"

			err := authz.CanAccessRecord(actor, "hosp-1", accesscontrol.TaskRelation, &other, nil)

			Expect(err).To(HaveOccurred())
			Expect(appErrorCode(err)).To(Equal(internal.ErrCodeRelationViolation))
		})

		It("should allow staff named in any participant column", func() {
			actor := makeActor(accesscontrol.RoleDoctor, "hosp-1")
			other := "someone-else"

			err := authz.CanAccessRecord(actor, "hosp-1", accesscontrol.TaskRelation, &other, &actor.ID)

			Expect(err).NotTo(HaveOccurred())
		})

		It("should not apply relation narrowing to reviewers", func() {
			actor := makeActor(accesscontrol.RoleHOD, "hosp-1")
			other := "someone-else"

			err := authz.CanAccessRecord(actor, "hosp-1", accesscontrol.TaskRelation, &other, nil)

			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("WriteScope", func() {
		It("should honor the requested hospital for super_admin", func() {
			id, err := authz.WriteScope(makeActor(accesscontrol.RoleSuperAdmin, ""), "hosp-9")

			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("hosp-9"))
		})

		It("should leave super_admin unpinned when no hospital is requested", func() {
			id, err := authz.WriteScope(makeActor(accesscontrol.RoleSuperAdmin, ""), "")

			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(BeEmpty())
		})

		It("should pin tenant-bound roles to their own hospital", func() {
			id, err := authz.WriteScope(makeActor(accesscontrol.RoleAdmin, "hosp-1"), "")

			Expect(err).NotTo(HaveOccurred())
			Expect(id).To(Equal("hosp-1"))
		})

		It("should reject writes targeting another hospital", func() {
			_, err := authz.WriteScope(makeActor(accesscontrol.RoleAdmin, "hosp-1"), "hosp-2")

			Expect(err).To(HaveOccurred())
			Expect(appErrorCode(err)).To(Equal(internal.ErrCodeTenantMismatch))
		})
	})

	Describe("filters applied to queries", func() {
		BeforeEach(func() {
			err := db.Exec(`CREATE TABLE tasks (id TEXT PRIMARY KEY, hospital_id TEXT NOT NULL, created_by TEXT NOT NULL, assigned_to TEXT)`).Error
			Expect(err).NotTo(HaveOccurred())
			for _, row := range [][]interface{}{
				{"t-1", "hosp-1", "actor-1", nil},
				{"t-2", "hosp-1", "other", "actor-1"},
				{"t-3", "hosp-1", "other", nil},
				{"t-4", "hosp-2", "actor-1", nil},
			} {
				err := db.Exec(`INSERT INTO tasks (id, hospital_id, created_by, assigned_to) VALUES (?, ?, ?, ?)`, row...).Error
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should restrict staff lists to tenant and participation", func() {
			actor := makeActor(accesscontrol.RoleDoctor, "hosp-1")
			scope, rel, err := authz.ListFilters(actor, "", accesscontrol.TaskRelation)
			Expect(err).NotTo(HaveOccurred())

			var ids []string
			query := scope.Apply(db.Table("tasks"), "hospital_id")
			query = rel.Apply(query)
			Expect(query.Order("id").Pluck("id", &ids).Error).NotTo(HaveOccurred())

			Expect(ids).To(Equal([]string{"t-1", "t-2"}))
		})

		It("should give reviewers the whole tenant", func() {
			actor := makeActor(accesscontrol.RoleAdmin, "hosp-1")
			scope, rel, err := authz.ListFilters(actor, "", accesscontrol.TaskRelation)
			Expect(err).NotTo(HaveOccurred())
			Expect(rel.Empty()).To(BeTrue())

			var ids []string
			Expect(scope.Apply(db.Table("tasks"), "hospital_id").Order("id").Pluck("id", &ids).Error).NotTo(HaveOccurred())

			Expect(ids).To(Equal([]string{"t-1", "t-2", "t-3"}))
		})
	})
})
