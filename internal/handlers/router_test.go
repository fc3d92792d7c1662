package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jobdesk/backend/internal/config"
	"github.com/jobdesk/backend/internal/database"
	"github.com/jobdesk/backend/internal/storage"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		Port:           "0",
		JWTSecret:      "test-secret",
		TokenTTL:       time.Hour,
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1 << 20,
		AllowedOrigins: []string{"*"},
	}

	resumes, err := storage.NewResumeStore(cfg.UploadDir, cfg.MaxUploadBytes, zap.NewNop())
	require.NoError(t, err)

	return NewRouter(cfg, db, resumes, zap.NewNop())
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerAs(t *testing.T, r *gin.Engine, name, email, role string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/users/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret1",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func postJob(t *testing.T, r *gin.Engine, token string, body gin.H) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/jobs", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id, ok := decode(t, w)["id"].(float64)
	require.True(t, ok)
	return uint(id)
}

// applyMultipart submits the multipart application form with an inline
// resume file.
func applyMultipart(t *testing.T, r *gin.Engine, token string, jobID uint, filename, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("jobId", fmt.Sprint(jobID)))
	require.NoError(t, mw.WriteField("contactEmail", "cand@example.com"))
	require.NoError(t, mw.WriteField("contactPhone", "+49 30 1234"))
	require.NoError(t, mw.WriteField("backgroundInfo", "five years of Go"))
	require.NoError(t, mw.WriteField("educationDetails", "BSc"))
	require.NoError(t, mw.WriteField("skills", "go, rust , c++"))

	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="resume"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 stub"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/applications", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEndToEndHiringFlow(t *testing.T) {
	r := testRouter(t)

	employer := registerAs(t, r, "Erin", "erin@example.com", "employer")
	candidate := registerAs(t, r, "Cal", "cal@example.com", "candidate")

	jobID := postJob(t, r, employer, gin.H{
		"title":       "Backend Engineer",
		"company":     "Acme",
		"location":    "Berlin",
		"description": "Build APIs",
	})

	w := applyMultipart(t, r, candidate, jobID, "cv.pdf", "application/pdf")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Employer sees exactly one pending application.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/applications/job/%d", jobID), employer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Pending", listed[0]["status"])
	applicationID := listed[0]["id"].(float64)

	applicant, ok := listed[0]["applicant"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Cal", applicant["name"])

	// Employer hires.
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", int(applicationID)), employer, gin.H{"status": "Hired"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Candidate sees the new status with the reduced job view.
	w = doJSON(t, r, http.MethodGet, "/api/applications/myapplications", candidate, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Hired", listed[0]["status"])
	assert.Equal(t, []interface{}{"go", "rust", "c++"}, listed[0]["skills"])

	job, ok := listed[0]["job"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Backend Engineer", job["title"])
	assert.Equal(t, "Acme", job["company"])
}

func TestAuthAndRoleGates(t *testing.T) {
	r := testRouter(t)

	candidate := registerAs(t, r, "Cal", "cal@example.com", "candidate")

	// No token.
	w := doJSON(t, r, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = doJSON(t, r, http.MethodGet, "/api/users/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Candidates cannot post jobs.
	w = doJSON(t, r, http.MethodPost, "/api/jobs", candidate, gin.H{
		"title": "t", "company": "c", "location": "l", "description": "d",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Candidates cannot use admin endpoints.
	w = doJSON(t, r, http.MethodGet, "/api/admin/users", candidate, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := testRouter(t)

	registerAs(t, r, "Ada", "ada@example.com", "candidate")

	w := doJSON(t, r, http.MethodPost, "/api/users/register", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestJobOwnershipOverHTTP(t *testing.T) {
	r := testRouter(t)

	owner := registerAs(t, r, "Erin", "erin@example.com", "employer")
	other := registerAs(t, r, "Oscar", "oscar@example.com", "employer")

	jobID := postJob(t, r, owner, gin.H{
		"title": "Backend Engineer", "company": "Acme", "location": "Berlin", "description": "Build APIs",
	})

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/jobs/%d", jobID), other, gin.H{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/jobs/%d", jobID), other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The owner can delete; response returns the removed id.
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/jobs/%d", jobID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, jobID, decode(t, w)["id"])

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/jobs/%d", jobID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchEndpointShape(t *testing.T) {
	r := testRouter(t)

	employer := registerAs(t, r, "Erin", "erin@example.com", "employer")
	for i := 0; i < 15; i++ {
		postJob(t, r, employer, gin.H{
			"title":       fmt.Sprintf("Engineer %02d", i),
			"company":     "Acme",
			"location":    "Berlin",
			"description": "Build APIs",
		})
	}

	w := doJSON(t, r, http.MethodGet, "/api/jobs/all?page=2&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.EqualValues(t, 15, body["total"])
	assert.EqualValues(t, 5, body["count"])
	assert.EqualValues(t, 2, body["page"])
	assert.EqualValues(t, 10, body["limit"])

	w = doJSON(t, r, http.MethodGet, "/api/jobs/all?search=engineer%2007", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["total"])
}

func TestApplyRejectsBadResume(t *testing.T) {
	r := testRouter(t)

	employer := registerAs(t, r, "Erin", "erin@example.com", "employer")
	candidate := registerAs(t, r, "Cal", "cal@example.com", "candidate")
	jobID := postJob(t, r, employer, gin.H{
		"title": "Backend Engineer", "company": "Acme", "location": "Berlin", "description": "Build APIs",
	})

	w := applyMultipart(t, r, candidate, jobID, "cv.exe", "application/octet-stream")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyTwiceConflictsOverHTTP(t *testing.T) {
	r := testRouter(t)

	employer := registerAs(t, r, "Erin", "erin@example.com", "employer")
	candidate := registerAs(t, r, "Cal", "cal@example.com", "candidate")
	jobID := postJob(t, r, employer, gin.H{
		"title": "Backend Engineer", "company": "Acme", "location": "Berlin", "description": "Build APIs",
	})

	w := applyMultipart(t, r, candidate, jobID, "cv.pdf", "application/pdf")
	require.Equal(t, http.StatusCreated, w.Code)

	w = applyMultipart(t, r, candidate, jobID, "cv.pdf", "application/pdf")
	assert.Equal(t, http.StatusConflict, w.Code)
}
