package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/jobdesk/backend/internal/apperrors"
	"github.com/jobdesk/backend/internal/dtos"
	"github.com/jobdesk/backend/internal/models"
)

const defaultPageSize = 10

// sortColumns whitelists the sortable fields; anything else falls back
// to created_at (newest first).
var sortColumns = map[string]string{
	"postedAt":  "created_at",
	"createdAt": "created_at",
	"title":     "title",
	"company":   "company",
	"minSalary": "min_salary",
	"maxSalary": "max_salary",
	"deadline":  "application_deadline",
}

type JobService struct {
	db *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{db: db}
}

// Create posts a job owned by the acting employer. Required-field
// validation happens at binding; enum fields are checked here so a bad
// token never reaches the schema default.
func (s *JobService) Create(owner *models.User, req *dtos.JobCreationRequest) (*models.Job, error) {
	if req.JobType != "" && !contains(models.JobTypes, req.JobType) {
		return nil, apperrors.Validation("invalid job type")
	}
	if req.WorkLocation != "" && !contains(models.WorkLocations, req.WorkLocation) {
		return nil, apperrors.Validation("invalid work location")
	}
	if req.ExperienceLevel != "" && !contains(models.ExperienceLevels, req.ExperienceLevel) {
		return nil, apperrors.Validation("invalid experience level")
	}
	if (req.MinSalary != nil && *req.MinSalary < 0) || (req.MaxSalary != nil && *req.MaxSalary < 0) {
		return nil, apperrors.Validation("salary cannot be negative")
	}

	job := &models.Job{
		OwnerID:             owner.ID,
		Title:               req.Title,
		Company:             req.Company,
		Location:            req.Location,
		Description:         req.Description,
		JobType:             req.JobType,
		WorkLocation:        req.WorkLocation,
		ExperienceLevel:     req.ExperienceLevel,
		MinSalary:           req.MinSalary,
		MaxSalary:           req.MaxSalary,
		ApplicationDeadline: req.ApplicationDeadline,
		Qualification:       req.Qualification,
		Responsibility:      req.Responsibility,
	}
	if job.JobType == "" {
		job.JobType = "Full-time"
	}
	if job.WorkLocation == "" {
		job.WorkLocation = "On-site"
	}
	if job.ExperienceLevel == "" {
		job.ExperienceLevel = "Entry-level"
	}

	if err := s.db.Create(job).Error; err != nil {
		return nil, apperrors.Internal("creating job", err)
	}
	return job, nil
}

func (s *JobService) List() ([]models.Job, error) {
	var jobs []models.Job
	if err := s.db.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, apperrors.Internal("listing jobs", err)
	}
	return jobs, nil
}

func (s *JobService) ListByOwner(ownerID uint) ([]models.Job, error) {
	var jobs []models.Job
	if err := s.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, apperrors.Internal("listing jobs", err)
	}
	return jobs, nil
}

func (s *JobService) Get(id uint) (*models.Job, error) {
	var job models.Job
	if err := s.db.First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("job not found")
		}
		return nil, apperrors.Internal("loading job", err)
	}
	return &job, nil
}

// getOwned loads a job and enforces ownership, in that order: a missing
// job is NotFound before any Forbidden.
func (s *JobService) getOwned(id, actorID uint) (*models.Job, error) {
	job, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if job.OwnerID != actorID {
		return nil, apperrors.Forbidden("not authorized to modify this job")
	}
	return job, nil
}

// Update applies a partial merge of the provided fields over the stored
// job. Owner only.
func (s *JobService) Update(id uint, actorID uint, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.getOwned(id, actorID)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Company != "" {
		job.Company = req.Company
	}
	if req.Location != "" {
		job.Location = req.Location
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.JobType != "" {
		if !contains(models.JobTypes, req.JobType) {
			return nil, apperrors.Validation("invalid job type")
		}
		job.JobType = req.JobType
	}
	if req.WorkLocation != "" {
		if !contains(models.WorkLocations, req.WorkLocation) {
			return nil, apperrors.Validation("invalid work location")
		}
		job.WorkLocation = req.WorkLocation
	}
	if req.ExperienceLevel != "" {
		if !contains(models.ExperienceLevels, req.ExperienceLevel) {
			return nil, apperrors.Validation("invalid experience level")
		}
		job.ExperienceLevel = req.ExperienceLevel
	}
	if req.MinSalary != nil {
		if *req.MinSalary < 0 {
			return nil, apperrors.Validation("salary cannot be negative")
		}
		job.MinSalary = req.MinSalary
	}
	if req.MaxSalary != nil {
		if *req.MaxSalary < 0 {
			return nil, apperrors.Validation("salary cannot be negative")
		}
		job.MaxSalary = req.MaxSalary
	}
	if req.ApplicationDeadline != nil {
		job.ApplicationDeadline = req.ApplicationDeadline
	}
	if req.Qualification != "" {
		job.Qualification = req.Qualification
	}
	if req.Responsibility != "" {
		job.Responsibility = req.Responsibility
	}

	if err := s.db.Save(job).Error; err != nil {
		return nil, apperrors.Internal("saving job", err)
	}
	return job, nil
}

// Delete hard-deletes an owned job and cascades to its applications in
// one transaction.
func (s *JobService) Delete(id uint, actorID uint) error {
	job, err := s.getOwned(id, actorID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", job.ID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, job.ID).Error
	})
	if err != nil {
		return apperrors.Internal("deleting job", err)
	}
	return nil
}

// Search runs the filtered, paginated listing. The total count is
// computed over the same filters, independent of pagination.
func (s *JobService) Search(q *dtos.JobSearchQuery) ([]models.Job, int64, error) {
	base := func() *gorm.DB {
		return s.applyFilters(s.db.Model(&models.Job{}), q)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("counting jobs", err)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = defaultPageSize
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if q.SortOrder == "asc" {
		direction = "ASC"
	}

	var jobs []models.Job
	err := base().
		Order(column + " " + direction).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, apperrors.Internal("searching jobs", err)
	}
	return jobs, total, nil
}

// applyFilters builds the WHERE clause: free text ORed across four
// columns, categorical filters IN-matched and ANDed, salary filters
// matched on range overlap. LOWER(...) LIKE keeps the match
// case-insensitive on every backend.
func (s *JobService) applyFilters(tx *gorm.DB, q *dtos.JobSearchQuery) *gorm.DB {
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(company) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if len(q.JobTypes) > 0 {
		tx = tx.Where("job_type IN ?", q.JobTypes)
	}
	if len(q.WorkLocations) > 0 {
		tx = tx.Where("work_location IN ?", q.WorkLocations)
	}
	if len(q.ExperienceLevels) > 0 {
		tx = tx.Where("experience_level IN ?", q.ExperienceLevels)
	}
	if q.MinSalary != nil {
		tx = tx.Where("max_salary >= ?", *q.MinSalary)
	}
	if q.MaxSalary != nil {
		tx = tx.Where("min_salary <= ?", *q.MaxSalary)
	}
	return tx
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
