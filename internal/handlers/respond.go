package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jobdesk/backend/internal/apperrors"
)

// respondError maps a domain error onto its HTTP status with a
// `{"error": ...}` body. Internal detail is logged, never returned.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": apperrors.PublicMessage(err)})
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
