package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jobdesk/backend/internal/auth"
	"github.com/jobdesk/backend/internal/database"
	"github.com/jobdesk/backend/internal/dtos"
	"github.com/jobdesk/backend/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory database exists per connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour)
}

var userSeq int

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	userSeq++

	hash, err := auth.HashPassword("password")
	require.NoError(t, err)

	user := &models.User{
		Name:     fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Password: hash,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedJob(t *testing.T, db *gorm.DB, owner *models.User, mutate ...func(*models.Job)) *models.Job {
	t.Helper()

	job := &models.Job{
		OwnerID:         owner.ID,
		Title:           "Backend Engineer",
		Company:         "Acme",
		Location:        "Berlin",
		Description:     "Build APIs",
		JobType:         "Full-time",
		WorkLocation:    "On-site",
		ExperienceLevel: "Mid-level",
	}
	for _, m := range mutate {
		m(job)
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func applyRequest(jobID uint) *dtos.ApplicationRequest {
	return &dtos.ApplicationRequest{
		JobID:            jobID,
		ContactEmail:     "cand@example.com",
		ContactPhone:     "+49 30 1234",
		BackgroundInfo:   "five years of Go",
		EducationDetails: "BSc Computer Science",
		Skills:           "go,postgres",
		ResumePath:       "resumes/1-1-abc.pdf",
	}
}
