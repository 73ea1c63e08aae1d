package app

import (
	"context"
	"net/http"
	"time"

	"github.com/garyellow/groundwater-bot-go/internal/config"
	domerrors "github.com/garyellow/groundwater-bot-go/internal/errors"
	"github.com/garyellow/groundwater-bot-go/internal/report"
	"github.com/gin-gonic/gin"
)

const (
	endpointQuery           = "query"
	endpointQueryByLocation = "query_by_location"
)

// queryRequest is the body of POST /api/query. Message is a pointer so an
// empty string is accepted while a missing field is not.
type queryRequest struct {
	Message  *string `json:"message" binding:"required"`
	Language string  `json:"language"`
}

// locationQueryRequest is the body of POST /api/query_by_location.
type locationQueryRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Language  string   `json:"language"`
}

func (a *Application) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	start := time.Now()
	answer := a.processor.Query(c.Request.Context(), *req.Message, req.Language)
	a.processor.Observe(endpointQuery, answer, start)
	c.JSON(http.StatusOK, answer)
}

func (a *Application) handleQueryByLocation(c *gin.Context) {
	var req locationQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidBody(c, err)
		return
	}

	start := time.Now()
	answer := a.processor.QueryByLocation(c.Request.Context(), *req.Latitude, *req.Longitude, req.Language)
	a.processor.Observe(endpointQueryByLocation, answer, start)
	c.JSON(http.StatusOK, answer)
}

// handleReport streams an xlsx report. The filename keeps the caller's
// spelling of the location; the sheet content uses the stored record.
func (a *Application) handleReport(c *gin.Context) {
	location := c.Param("location")

	rec, err := a.records.Lookup(location)
	if err != nil {
		if domerrors.IsNotFound(err) {
			a.metrics.RecordReport("not_found")
			c.JSON(http.StatusNotFound, gin.H{"detail": "Location not found"})
			return
		}
		a.metrics.RecordReport("error")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
		return
	}

	body, err := report.Bytes(location, rec)
	if err != nil {
		a.metrics.RecordReport("error")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
		return
	}

	a.metrics.RecordReport("ok")
	c.Header("Content-Disposition", "attachment; filename="+report.Filename(location))
	c.Data(http.StatusOK, report.ContentType, body)
}

func abortInvalidBody(c *gin.Context, err error) {
	_ = c.Error(err).SetType(gin.ErrorTypeBind)
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func (a *Application) getFeatures() map[string]bool {
	return map[string]bool{
		"llm":     a.chain != nil && a.chain.Len() > 0,
		"geocode": a.geocoder != nil && a.geocoder.Enabled(),
		"line":    a.webhookHandler != nil,
		"r2":      a.objects != nil,
	}
}

func (a *Application) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), config.ReadinessCheck)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		a.logger.WithError(err).Warn("Readiness check failed: database unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "database unavailable",
		})
		return
	}

	stored, err := a.db.CountRecords(ctx)
	if err != nil {
		a.logger.WithError(err).Warn("Failed to count records in readiness check")
		stored = -1
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"database": "connected",
		"records": gin.H{
			"stored": stored,
			"loaded": a.records.Len(),
		},
		"features": a.getFeatures(),
	})
}
