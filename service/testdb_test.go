package services

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "github.com/gokcika/project-scoring-system/models"
)

// setupTestDB opens an isolated in-memory database per test and migrates the
// projects schema into it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&model.Project{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedProject inserts a record with mid-range raw scores and returns it.
func seedProject(t *testing.T, db *gorm.DB, mutate func(*model.Project)) *model.Project {
	t.Helper()

	project := &model.Project{
		Title:          "Invoice OCR rollout",
		RequestorName:  "Dana Reyes",
		RequestorEmail: "dana.reyes@example.com",
		Department:     "Finance",
		Status:         StatusSubmitted,

		RegRequired:   "YES",
		RegCitation:   "GDPR Art. 30",
		RegDeadline:   "6-12 months",
		OpProcessName: "Manual invoice data entry across three regional teams",
		OpCurrentTime: 40,

		RegScore:   3.0,
		RepScore:   3.0,
		StratScore: 3.0,
		OpScore:    3.0,
		ResScore:   3.0,
		DataScore:  3.0,
		StakeScore: 3.0,
		TotalScore: 60.0,
		Priority:   PriorityPlanned,
	}
	if mutate != nil {
		mutate(project)
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func floatPtr(v float64) *float64 {
	return &v
}
