package task_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/hospital-workforce/internal"
	"github.com/frahmantamala/hospital-workforce/internal/accesscontrol"
	"github.com/frahmantamala/hospital-workforce/internal/task"
)

func TestTask(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Task Suite")
}

type mockTaskRepository struct {
	tasks    map[string]*task.Task
	comments map[string][]*task.Comment
}

func newMockTaskRepository() *mockTaskRepository {
	return &mockTaskRepository{
		tasks:    make(map[string]*task.Task),
		comments: make(map[string][]*task.Comment),
	}
}

func (m *mockTaskRepository) Create(_ context.Context, t *task.Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepository) GetByID(_ context.Context, id string) (*task.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, internal.NewNotFoundError("task not found", internal.ErrCodeTaskNotFound)
	}
	return t, nil
}

func (m *mockTaskRepository) List(_ context.Context, _ accesscontrol.Scope, _ accesscontrol.RelationFilter, _ task.ListTasksFilter) ([]*task.Task, error) {
	out := make([]*task.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTaskRepository) Update(_ context.Context, t *task.Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskRepository) CreateComment(_ context.Context, c *task.Comment) error {
	m.comments[c.TaskID] = append(m.comments[c.TaskID], c)
	return nil
}

func (m *mockTaskRepository) ListComments(_ context.Context, taskID string) ([]*task.Comment, error) {
	return m.comments[taskID], nil
}

func strPtr(s string) *string { return &s }

func actorWith(role accesscontrol.Role, id, hospitalID string) *accesscontrol.Actor {
	a := &accesscontrol.Actor{ID: id, Role: role, Active: true}
	if hospitalID != "" {
		a.HospitalID = strPtr(hospitalID)
	}
	return a
}

var _ = Describe("TaskService", func() {
	var (
		service  *task.Service
		mockRepo *mockTaskRepository
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = newMockTaskRepository()
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		for _, stmt := range []string{
			`CREATE TABLE departments (id TEXT PRIMARY KEY, hospital_id TEXT NOT NULL)`,
			`CREATE TABLE patients (id TEXT PRIMARY KEY, hospital_id TEXT NOT NULL)`,
			`CREATE TABLE profiles (id TEXT PRIMARY KEY, hospital_id TEXT NOT NULL)`,
			`INSERT INTO departments VALUES ('dept-1', 'hosp-1')`,
			`INSERT INTO patients VALUES ('pat-1', 'hosp-1'), ('pat-2', 'hosp-2')`,
			`INSERT INTO profiles VALUES ('doc-1', 'hosp-1'), ('nurse-1', 'hosp-1')`,
		} {
			Expect(db.Exec(stmt).Error).NotTo(HaveOccurred())
		}

		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = task.NewService(mockRepo, accesscontrol.New(db, testLogger), testLogger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("should create a task owned by the actor with defaults", func() {
			actor := actorWith(accesscontrol.RoleDoctor, "doc-1", "hosp-1")
			dto := task.CreateTaskDTO{Title: "Check vitals"}

			result, err := service.Create(ctx, actor, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.CreatedBy).To(Equal("doc-1"))
			Expect(result.HospitalID).To(Equal("hosp-1"))
			Expect(result.Status).To(Equal(task.StatusTodo))
			Expect(result.Priority).To(Equal(task.PriorityMedium))
		})

		It("should accept in-tenant linked references", func() {
			actor := actorWith(accesscontrol.RoleDoctor, "doc-1", "hosp-1")
			dto := task.CreateTaskDTO{
				Title:        "Round",
				DepartmentID: strPtr("dept-1"),
				PatientID:    strPtr("pat-1"),
				AssignedTo:   strPtr("nurse-1"),
			}

			result, err := service.Create(ctx, actor, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(*result.PatientID).To(Equal("pat-1"))
		})

		It("should reject a patient from a sibling hospital", func() {
			actor := actorWith(accesscontrol.RoleDoctor, "doc-1", "hosp-1")
			dto := task.CreateTaskDTO{Title: "Round", PatientID: strPtr("pat-2")}

			_, err := service.Create(ctx, actor, dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(appErr.Message).To(ContainSubstring("patient_id does not belong to hospital"))
		})

		It("should reject an unknown status", func() {
			actor := actorWith(accesscontrol.RoleDoctor, "doc-1", "hosp-1")
			dto := task.CreateTaskDTO{Title: "Round", Status: task.Status("paused")}

			_, err := service.Create(ctx, actor, dto)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Get", func() {
		BeforeEach(func() {
			mockRepo.tasks["task-1"] = &task.Task{
				ID:         "task-1",
				HospitalID: "hosp-1",
				CreatedBy:  "doc-1",
				AssignedTo: strPtr("nurse-1"),
				Title:      "Check vitals",
				Status:     task.StatusTodo,
				Priority:   task.PriorityMedium,
				IsActive:   true,
			}
		})

		It("should allow the creator and the assignee", func() {
			for _, id := range []string{"doc-1", "nurse-1"} {
				_, err := service.Get(ctx, actorWith(accesscontrol.RoleDoctor, id, "hosp-1"), "task-1")
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("should forbid uninvolved staff in the same hospital", func() {
			_, err := service.Get(ctx, actorWith(accesscontrol.RoleNurse, "nurse-9", "hosp-1"), "task-1")

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeRelationViolation))
		})

		It("should allow reviewers in the same hospital", func() {
			_, err := service.Get(ctx, actorWith(accesscontrol.RoleHOD, "hod-1", "hosp-1"), "task-1")

			Expect(err).ToNot(HaveOccurred())
		})

		It("should forbid cross-tenant reads of an existing task", func() {
			_, err := service.Get(ctx, actorWith(accesscontrol.RoleAdmin, "admin-2", "hosp-2"), "task-1")

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		})
	})

	Describe("Comments", func() {
		BeforeEach(func() {
			mockRepo.tasks["task-1"] = &task.Task{
				ID:         "task-1",
				HospitalID: "hosp-1",
				CreatedBy:  "doc-1",
				Title:      "Check vitals",
				Status:     task.StatusTodo,
				Priority:   task.PriorityMedium,
				IsActive:   true,
			}
		})

		It("should let a participant comment", func() {
			actor := actorWith(accesscontrol.RoleDoctor, "doc-1", "hosp-1")

			c, err := service.AddComment(ctx, actor, "task-1", task.CreateCommentDTO{Body: "done at rounds"})

			Expect(err).ToNot(HaveOccurred())
			Expect(c.UserID).To(Equal("doc-1"))
			Expect(c.TaskID).To(Equal("task-1"))
		})

		It("should gate comments by the task read decision", func() {
			actor := actorWith(accesscontrol.RoleNurse, "nurse-9", "hosp-1")

			_, err := service.AddComment(ctx, actor, "task-1", task.CreateCommentDTO{Body: "hi"})

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeRelationViolation))

			_, err = service.ListComments(ctx, actor, "task-1")
			Expect(err).To(HaveOccurred())
		})

		It("should require a body", func() {
			actor := actorWith(accesscontrol.RoleDoctor, "doc-1", "hosp-1")

			_, err := service.AddComment(ctx, actor, "task-1", task.CreateCommentDTO{Body: "   "})

			Expect(err).To(HaveOccurred())
		})
	})
})
