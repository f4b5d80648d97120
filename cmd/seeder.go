package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a demo hospital pair for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGormDB(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearSeedData(db)
		}
		seedDemoData(db)
	},
}

var seedTables = []string{
	"task_comments", "tasks", "handovers", "swap_requests",
	"leave_requests", "shifts", "patients", "profiles",
	"departments", "hospitals",
}

func clearSeedData(db *gorm.DB) {
	for _, table := range seedTables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			log.Fatalf("failed to clear %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

type seedHospital struct {
	id   string
	name string
	code string
}

func seedDemoData(db *gorm.DB) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

	hospitals := []seedHospital{
		{id: uuid.NewString(), name: "St. Maria General Hospital", code: "SMG"},
		{id: uuid.NewString(), name: "Harborview Medical Center", code: "HMC"},
	}

	superAdminEmail := "root@workforce.local"
	if !rowExists(db, "SELECT 1 FROM profiles WHERE email = ?", superAdminEmail) {
		mustExec(db, `INSERT INTO profiles (id, email, full_name, password_hash, role, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, 'super_admin', true, now(), now())`,
			uuid.NewString(), superAdminEmail, "Root Operator", string(hash))
		fmt.Println("Seeded super admin:", superAdminEmail)
	}

	for _, h := range hospitals {
		if rowExists(db, "SELECT 1 FROM hospitals WHERE code = ?", h.code) {
			fmt.Printf("hospital %s already exists; skipping\n", h.code)
			continue
		}
		mustExec(db, `INSERT INTO hospitals (id, name, code, is_active, created_at, updated_at)
			VALUES (?, ?, ?, true, now(), now())`, h.id, h.name, h.code)

		deptID := uuid.NewString()
		mustExec(db, `INSERT INTO departments (id, hospital_id, name, type, is_active, created_at, updated_at)
			VALUES (?, ?, 'Emergency', 'clinical', true, now(), now())`, deptID, h.id)

		roles := []struct {
			role  string
			email string
			name  string
		}{
			{"admin", "admin@" + h.code + ".local", h.name + " Admin"},
			{"hod", "hod@" + h.code + ".local", h.name + " Head of Department"},
			{"doctor", "doctor@" + h.code + ".local", h.name + " Doctor"},
			{"nurse", "nurse@" + h.code + ".local", h.name + " Nurse"},
		}

		var doctorID string
		for _, p := range roles {
			pid := uuid.NewString()
			mustExec(db, `INSERT INTO profiles (id, email, full_name, password_hash, role, hospital_id, department_id, is_active, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, true, now(), now())`,
				pid, p.email, p.name, string(hash), p.role, h.id, deptID)
			if p.role == "doctor" {
				doctorID = pid
			}
		}

		patientID := uuid.NewString()
		mustExec(db, `INSERT INTO patients (id, hospital_id, department_id, mrn, full_name, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, 'Demo Patient', true, now(), now())`,
			patientID, h.id, deptID, h.code+"-0001")

		start := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
		mustExec(db, `INSERT INTO shifts (id, hospital_id, department_id, assigned_user_id, shift_type, start_at, end_at, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, 'day', ?, ?, true, now(), now())`,
			uuid.NewString(), h.id, deptID, doctorID, start, start.Add(8*time.Hour))

		mustExec(db, `INSERT INTO tasks (id, hospital_id, department_id, patient_id, created_by, assigned_to, title, status, priority, is_active, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, 'Review admission notes', 'todo', 'medium', true, now(), now())`,
			uuid.NewString(), h.id, deptID, patientID, doctorID, doctorID)

		fmt.Printf("Seeded hospital %s (%s)\n", h.name, h.code)
	}
}

func rowExists(db *gorm.DB, query string, args ...interface{}) bool {
	var one int
	return db.Raw(query, args...).Row().Scan(&one) == nil
}

func mustExec(db *gorm.DB, query string, args ...interface{}) {
	if err := db.Exec(query, args...).Error; err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
