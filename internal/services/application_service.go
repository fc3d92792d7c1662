package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jobdesk/backend/internal/apperrors"
	"github.com/jobdesk/backend/internal/dtos"
	"github.com/jobdesk/backend/internal/models"
)

type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

// NormalizeSkills accepts a comma-separated string or a list of tokens
// and returns the trimmed tokens in their original order. Empty tokens
// are dropped; any other payload shape is a validation failure.
func NormalizeSkills(raw interface{}) ([]string, error) {
	var tokens []string
	switch v := raw.(type) {
	case string:
		tokens = strings.Split(v, ",")
	case []string:
		tokens = v
	case []interface{}:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, apperrors.Validation("skills must be a comma-separated string or an array")
			}
			tokens = append(tokens, s)
		}
	default:
		return nil, apperrors.Validation("skills must be a comma-separated string or an array")
	}

	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.Validation("please list your skills")
	}
	return out, nil
}

// Apply creates one application for the acting candidate. The job must
// exist, every field must be present, and a candidate cannot apply to
// the same job twice.
func (s *ApplicationService) Apply(applicant *models.User, req *dtos.ApplicationRequest) (*models.Application, error) {
	if req.JobID == 0 || req.ContactEmail == "" || req.ContactPhone == "" ||
		req.BackgroundInfo == "" || req.EducationDetails == "" || req.ResumePath == "" {
		return nil, apperrors.Validation("please fill all required fields, including resume upload and skills")
	}

	skills, err := NormalizeSkills(req.Skills)
	if err != nil {
		return nil, err
	}

	var job models.Job
	if err := s.db.First(&job, req.JobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.Internal("loading job", err)
	}

	var count int64
	err = s.db.Model(&models.Application{}).
		Where("job_id = ? AND applicant_id = ?", job.ID, applicant.ID).
		Count(&count).Error
	if err != nil {
		return nil, apperrors.Internal("checking existing application", err)
	}
	if count > 0 {
		return nil, apperrors.Conflict("you have already applied to this job")
	}

	application := &models.Application{
		JobID:            job.ID,
		ApplicantID:      applicant.ID,
		ContactEmail:     req.ContactEmail,
		ContactPhone:     req.ContactPhone,
		BackgroundInfo:   req.BackgroundInfo,
		EducationDetails: req.EducationDetails,
		Skills:           skills,
		Resume:           req.ResumePath,
		Status:           models.StatusPending,
	}
	if err := s.db.Create(application).Error; err != nil {
		return nil, apperrors.Internal("creating application", err)
	}
	return application, nil
}

// ListByApplicant returns the candidate's applications newest first,
// each annotated with a reduced view of its job.
func (s *ApplicationService) ListByApplicant(applicantID uint) ([]dtos.CandidateApplication, error) {
	var applications []models.Application
	err := s.db.Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, apperrors.Internal("listing applications", err)
	}

	out := make([]dtos.CandidateApplication, 0, len(applications))
	for _, a := range applications {
		out = append(out, dtos.CandidateApplication{
			Application: a,
			Job: dtos.JobSummary{
				ID:       a.Job.ID,
				Title:    a.Job.Title,
				Company:  a.Job.Company,
				Location: a.Job.Location,
			},
		})
	}
	return out, nil
}

// ListForJob returns a job's applications for its owning employer,
// newest first, each annotated with a reduced view of the applicant.
func (s *ApplicationService) ListForJob(jobID, actorID uint) ([]dtos.JobApplication, error) {
	var job models.Job
	if err := s.db.First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.Internal("loading job", err)
	}
	if job.OwnerID != actorID {
		return nil, apperrors.Forbidden("not authorized to view applications for this job")
	}

	var applications []models.Application
	err := s.db.Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, apperrors.Internal("listing applications", err)
	}

	out := make([]dtos.JobApplication, 0, len(applications))
	for _, a := range applications {
		out = append(out, dtos.JobApplication{
			Application: a,
			Applicant: dtos.ApplicantSummary{
				ID:    a.Applicant.ID,
				Name:  a.Applicant.Name,
				Email: a.Applicant.Email,
			},
		})
	}
	return out, nil
}

// UpdateStatus persists a new status. Existence is checked before
// ownership; the status token must be one of the five valid values.
// Any valid status may replace any other.
func (s *ApplicationService) UpdateStatus(id, actorID uint, status string) (*models.Application, error) {
	var application models.Application
	if err := s.db.Preload("Job").First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("application not found")
		}
		return nil, apperrors.Internal("loading application", err)
	}

	if application.Job.OwnerID != actorID {
		return nil, apperrors.Forbidden("not authorized to update this application")
	}

	if !contains(models.ValidStatuses, status) {
		return nil, apperrors.Validation("invalid application status")
	}

	application.Status = status
	if err := s.db.Model(&application).Update("status", status).Error; err != nil {
		return nil, apperrors.Internal("saving application", err)
	}
	return &application, nil
}
