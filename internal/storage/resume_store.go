// Package storage is the upload gate: it validates resume files and
// writes the accepted ones to disk before the application ledger is
// touched.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobdesk/backend/internal/apperrors"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

type ResumeStore struct {
	dir      string
	maxBytes int64
	log      *zap.Logger
}

// NewResumeStore creates the resumes directory under dir if needed.
func NewResumeStore(dir string, maxBytes int64, log *zap.Logger) (*ResumeStore, error) {
	resumeDir := filepath.Join(dir, "resumes")
	if err := os.MkdirAll(resumeDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &ResumeStore{dir: dir, maxBytes: maxBytes, log: log}, nil
}

// Save validates the declared extension, MIME type and size, then
// stores the file as <userID>-<timestamp>-<random><ext> and returns
// the path relative to the uploads root.
func (s *ResumeStore) Save(userID uint, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", apperrors.Validation("only PDF, DOC, and DOCX files are allowed")
	}

	if mimeType := file.Header.Get("Content-Type"); mimeType != "" {
		base, _, _ := strings.Cut(mimeType, ";")
		if !allowedMimeTypes[strings.TrimSpace(base)] {
			return "", apperrors.Validation("only PDF, DOC, and DOCX files are allowed")
		}
	}

	if file.Size > s.maxBytes {
		return "", apperrors.Validation(fmt.Sprintf("resume exceeds the %d byte limit", s.maxBytes))
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.Internal("opening upload", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%d-%s%s", userID, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	relPath := filepath.Join("resumes", name)

	dst, err := os.OpenFile(filepath.Join(s.dir, relPath), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperrors.Internal("creating resume file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", apperrors.Internal("writing resume file", err)
	}

	s.log.Info("resume stored", zap.Uint("user_id", userID), zap.String("path", relPath))
	return relPath, nil
}
