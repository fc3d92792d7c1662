package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobdesk/backend/internal/dtos"
	"github.com/jobdesk/backend/internal/middleware"
	"github.com/jobdesk/backend/internal/services"
	"github.com/jobdesk/backend/internal/storage"
)

type ApplicationHandler struct {
	applications *services.ApplicationService
	resumes      *storage.ResumeStore
	log          *zap.Logger
}

func NewApplicationHandler(applications *services.ApplicationService, resumes *storage.ResumeStore, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, resumes: resumes, log: log}
}

// Apply is POST /api/applications (candidate only, multipart form with
// a resume file). The upload gate runs before the ledger is touched.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	applicant := middleware.Identity(c)

	jobID, err := strconv.ParseUint(c.PostForm("jobId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please fill all required fields, including resume upload and skills"})
		return
	}

	file, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please upload your resume"})
		return
	}

	resumePath, err := h.resumes.Save(applicant.ID, file)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	req := &dtos.ApplicationRequest{
		JobID:            uint(jobID),
		ContactEmail:     c.PostForm("contactEmail"),
		ContactPhone:     c.PostForm("contactPhone"),
		BackgroundInfo:   c.PostForm("backgroundInfo"),
		EducationDetails: c.PostForm("educationDetails"),
		Skills:           skillsField(c),
		ResumePath:       resumePath,
	}

	application, err := h.applications.Apply(applicant, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "application submitted successfully",
		"application": application,
	})
}

// MyApplications is GET /api/applications/myapplications (candidate).
func (h *ApplicationHandler) MyApplications(c *gin.Context) {
	applications, err := h.applications.ListByApplicant(middleware.Identity(c).ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// ForJob is GET /api/applications/job/:jobId (owning employer).
func (h *ApplicationHandler) ForJob(c *gin.Context) {
	jobID, err := parseID(c, "jobId")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	applications, err := h.applications.ListForJob(jobID, middleware.Identity(c).ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

// UpdateStatus is PUT /api/applications/:id/status (owning employer).
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}

	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application status"})
		return
	}

	application, err := h.applications.UpdateStatus(id, middleware.Identity(c).ID, req.Status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "application status updated",
		"application": application,
	})
}

// skillsField keeps the dual shape of the skills input: one form value
// is treated as a comma-separated string, repeated values as a list.
func skillsField(c *gin.Context) interface{} {
	values := c.PostFormArray("skills")
	switch len(values) {
	case 0:
		return nil
	case 1:
		return values[0]
	default:
		return values
	}
}
