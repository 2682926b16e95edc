package httpapi

import (
	"errors"
	"net/http"
	"time"

	"call-analytics/internal/analytics"
	"call-analytics/internal/auth"
	"call-analytics/internal/calls"
	"call-analytics/internal/export"
	"call-analytics/internal/ingest"
	"call-analytics/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Ingest    *ingest.Service
	Analytics *analytics.Service

	// Auth is nil when no dashboard password is configured.
	Auth *auth.Manager
}

// ReceiveCall accepts one call record and persists it.
// POST /api/calls -> 201 with the stored record.
func (h Handlers) ReceiveCall(c *gin.Context) {
	var p ingest.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	rec, err := h.Ingest.Ingest(c.Request.Context(), p)
	if err != nil {
		var storageErr *calls.StorageError
		if errors.As(err, &storageErr) {
			logger.FromGin(c).Error("ingest storage failure", "err", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.FromGin(c).Info("call record created",
		"id", rec.ID,
		"phone", rec.Phone,
		"status", rec.Status,
		"attempt", rec.Attempt,
	)
	c.JSON(http.StatusCreated, rec)
}

// GetAnalytics serves the full report.
// GET /api/analytics?country=PT|ES (anything else means all calls).
func (h Handlers) GetAnalytics(c *gin.Context) {
	country := c.DefaultQuery("country", "ALL")

	rep, err := h.Analytics.Report(c.Request.Context(), country)
	if err != nil {
		logger.FromGin(c).Error("analytics failure", "err", err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// ExportAnalytics streams the report as an XLSX workbook.
func (h Handlers) ExportAnalytics(c *gin.Context) {
	country := c.DefaultQuery("country", "ALL")

	rep, err := h.Analytics.Report(c.Request.Context(), country)
	if err != nil {
		logger.FromGin(c).Error("analytics failure", "err", err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
		return
	}
	wb, err := export.Workbook(rep)
	if err != nil {
		logger.FromGin(c).Error("export failure", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	defer wb.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="call-analytics.xlsx"`)
	c.Status(http.StatusOK)
	if err := wb.Write(c.Writer); err != nil {
		logger.FromGin(c).Error("export write failed", "err", err)
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login exchanges the dashboard password for a session cookie.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "dashboard auth disabled"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if !h.Auth.CheckPassword(req.Password) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}
	tok, err := h.Auth.IssueSession(time.Now())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session issuance failed"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, tok, int(h.Auth.SessionTTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
