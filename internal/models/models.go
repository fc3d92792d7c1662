package models

import "time"

// Role values a User can hold. Registration only ever assigns candidate
// or employer; admin is granted through the admin role endpoint.
const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

var ValidRoles = []string{RoleCandidate, RoleEmployer, RoleAdmin}

// Job enums. The schema defaults below mirror these.
var (
	JobTypes         = []string{"Full-time", "Part-time", "Contract", "Internship"}
	WorkLocations    = []string{"Remote", "On-site", "Hybrid"}
	ExperienceLevels = []string{"Entry-level", "Mid-level", "Senior", "Director", "Executive"}
)

// Application statuses. Any status may move to any other status.
const (
	StatusPending   = "Pending"
	StatusReviewed  = "Reviewed"
	StatusInterview = "Interview"
	StatusRejected  = "Rejected"
	StatusHired     = "Hired"
)

var ValidStatuses = []string{StatusPending, StatusReviewed, StatusInterview, StatusRejected, StatusHired}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;default:'candidate'" json:"role"`

	// Free-text profile fields.
	Location      string `json:"location"`
	Qualification string `json:"qualification"`
	Experience    string `json:"experience"`
	Skills        string `json:"skills"`
}

type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"postedAt"`
	UpdatedAt time.Time `json:"updated_at"`

	// OwnerID is set once at creation and never reassigned.
	OwnerID uint `gorm:"not null;index" json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	Title       string `gorm:"not null" json:"title"`
	Company     string `gorm:"not null" json:"company"`
	Location    string `gorm:"not null" json:"location"`
	Description string `gorm:"type:text;not null" json:"description"`

	JobType         string `gorm:"not null;default:'Full-time'" json:"jobType"`
	WorkLocation    string `gorm:"not null;default:'On-site'" json:"workLocation"`
	ExperienceLevel string `gorm:"not null;default:'Entry-level'" json:"experienceLevel"`

	MinSalary *int64 `json:"minSalary,omitempty"`
	MaxSalary *int64 `json:"maxSalary,omitempty"`

	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`

	Qualification  string `json:"qualification,omitempty"`
	Responsibility string `json:"responsibility,omitempty"`
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// One application per (job, applicant).
	JobID uint `gorm:"not null;uniqueIndex:idx_applications_job_applicant" json:"jobId"`
	Job   Job  `gorm:"foreignKey:JobID" json:"-"`

	ApplicantID uint `gorm:"not null;uniqueIndex:idx_applications_job_applicant" json:"applicantId"`
	Applicant   User `gorm:"foreignKey:ApplicantID" json:"-"`

	ContactEmail     string `gorm:"not null" json:"contactEmail"`
	ContactPhone     string `gorm:"not null" json:"contactPhone"`
	BackgroundInfo   string `gorm:"type:text;not null" json:"backgroundInfo"`
	EducationDetails string `gorm:"type:text;not null" json:"educationDetails"`

	Skills []string `gorm:"serializer:json;type:text" json:"skills"`

	// Resume holds the stored path relative to the uploads root.
	Resume string `gorm:"not null" json:"resume"`

	Status string `gorm:"not null;default:'Pending'" json:"status"`
}
