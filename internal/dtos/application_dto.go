package dtos

import "github.com/jobdesk/backend/internal/models"

// ApplicationRequest carries the multipart fields of POST
// /api/applications. Skills stays untyped: the caller may send a
// comma-separated string or a list of tokens, anything else is
// rejected downstream.
type ApplicationRequest struct {
	JobID            uint
	ContactEmail     string
	ContactPhone     string
	BackgroundInfo   string
	EducationDetails string
	Skills           interface{}
	ResumePath       string
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// CandidateApplication is an application annotated with its job's
// reduced view, newest first in listings.
type CandidateApplication struct {
	models.Application
	Job JobSummary `json:"job"`
}

// JobApplication is an application annotated with the applicant's
// reduced view, for the owning employer.
type JobApplication struct {
	models.Application
	Applicant ApplicantSummary `json:"applicant"`
}
