package dtos

import (
	"time"

	"github.com/jobdesk/backend/internal/models"
)

type JobCreationRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Description string `json:"description" binding:"required"`

	// Optional fields; schema defaults apply when omitted.
	JobType             string     `json:"jobType"`
	WorkLocation        string     `json:"workLocation"`
	ExperienceLevel     string     `json:"experienceLevel"`
	MinSalary           *int64     `json:"minSalary"`
	MaxSalary           *int64     `json:"maxSalary"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	Qualification       string     `json:"qualification"`
	Responsibility      string     `json:"responsibility"`
}

// JobUpdateRequest is a partial merge: nil/empty fields keep the stored
// value.
type JobUpdateRequest struct {
	Title               string     `json:"title"`
	Company             string     `json:"company"`
	Location            string     `json:"location"`
	Description         string     `json:"description"`
	JobType             string     `json:"jobType"`
	WorkLocation        string     `json:"workLocation"`
	ExperienceLevel     string     `json:"experienceLevel"`
	MinSalary           *int64     `json:"minSalary"`
	MaxSalary           *int64     `json:"maxSalary"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
	Qualification       string     `json:"qualification"`
	Responsibility      string     `json:"responsibility"`
}

// JobSearchQuery is the parsed form of GET /api/jobs/all parameters.
type JobSearchQuery struct {
	Search           string
	JobTypes         []string
	WorkLocations    []string
	ExperienceLevels []string
	MinSalary        *int64
	MaxSalary        *int64

	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type JobSearchResponse struct {
	Count int          `json:"count"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Jobs  []models.Job `json:"jobs"`
}

// JobSummary is the reduced job view attached to a candidate's
// application listing.
type JobSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}
