package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobdesk/backend/internal/dtos"
	"github.com/jobdesk/backend/internal/middleware"
	"github.com/jobdesk/backend/internal/services"
)

type JobHandler struct {
	jobs *services.JobService
	log  *zap.Logger
}

func NewJobHandler(jobs *services.JobService, log *zap.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, log: log}
}

// Post is POST /api/jobs (employer only).
func (h *JobHandler) Post(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please add all required fields: title, company, location, description"})
		return
	}

	job, err := h.jobs.Create(middleware.Identity(c), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// List is GET /api/jobs (public, newest first).
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.List()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// MyJobs is GET /api/jobs/my-jobs (employer only).
func (h *JobHandler) MyJobs(c *gin.Context) {
	jobs, err := h.jobs.ListByOwner(middleware.Identity(c).ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Get is GET /api/jobs/:id (public).
func (h *JobHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	job, err := h.jobs.Get(id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// Search is GET /api/jobs/all: filtered, paginated, sorted listing.
func (h *JobHandler) Search(c *gin.Context) {
	q := &dtos.JobSearchQuery{
		Search:           c.Query("search"),
		JobTypes:         multiValues(c, "jobType"),
		WorkLocations:    multiValues(c, "workLocation"),
		ExperienceLevels: multiValues(c, "experienceLevel"),
		MinSalary:        optionalInt(c.Query("minSalary")),
		MaxSalary:        optionalInt(c.Query("maxSalary")),
		SortBy:           c.Query("sortBy"),
		SortOrder:        c.Query("sortOrder"),
	}
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = page
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		q.Limit = limit
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	jobs, total, err := h.jobs.Search(q)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dtos.JobSearchResponse{
		Count: len(jobs),
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
		Jobs:  jobs,
	})
}

// Update is PUT /api/jobs/:id (owner only).
func (h *JobHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobs.Update(id, middleware.Identity(c).ID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Delete is DELETE /api/jobs/:id (owner only).
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	if err := h.jobs.Delete(id, middleware.Identity(c).ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "job removed"})
}

func parseID(c *gin.Context, param string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// multiValues merges repeated query params and comma-separated values
// into one token list.
func multiValues(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func optionalInt(raw string) *int64 {
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
