package app

import (
	"net/http"
	"slices"
	"time"

	"github.com/garyellow/groundwater-bot-go/internal/ctxutil"
	"github.com/garyellow/groundwater-bot-go/internal/logger"
	"github.com/garyellow/groundwater-bot-go/internal/metrics"
	"github.com/garyellow/groundwater-bot-go/internal/sentry"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const requestIDHeader = "X-Request-Id"

// newRouter builds the gin engine. Routes that need an optional component are
// only registered when that component exists.
func (a *Application) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(a.logger, a.metrics))
	router.Use(corsMiddleware(a.cfg.CORSAllowedOrigins))

	api := router.Group("/api")
	api.POST("/query", a.handleQuery)
	api.POST("/query_by_location", a.handleQueryByLocation)
	api.GET("/report/:location", a.handleReport)

	router.GET("/livez", a.livenessCheck)
	router.HEAD("/livez", a.livenessCheck)
	router.GET("/readyz", a.readinessCheck)
	router.HEAD("/readyz", a.readinessCheck)

	if a.registry != nil {
		router.GET("/metrics",
			metricsAuthMiddleware(a.cfg.Metrics),
			gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	}

	if a.webhookHandler != nil {
		router.POST("/webhook/line", a.webhookHandler.Handle)
	}

	return router
}

// corsMiddleware allows the configured origins with credentials. A "*" entry
// echoes any origin back, since browsers reject a literal "*" with credentials.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{"Content-Disposition", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")
		c.Next()
	}
}

// requestIDMiddleware takes the caller's X-Request-Id (or X-Correlation-Id),
// generates one when absent, echoes it and stores it in the request context.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = c.GetHeader("X-Correlation-Id")
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Header(requestIDHeader, requestID)
		c.Request = c.Request.WithContext(ctxutil.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests with status-based log levels:
// 5xx=Error, 4xx=Warn, 404=Debug, 3xx/2xx=Debug. Error responses are counted
// and 5xx errors attached to the context are sent to Sentry.
func loggingMiddleware(log *logger.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		entry := log.WithField("http_method", method).
			WithField("http_path", path).
			WithField("http_status", status).
			WithField("duration_ms", duration.Milliseconds()).
			WithField("client_ip", c.ClientIP())

		if requestID, ok := ctxutil.GetRequestID(c.Request.Context()); ok {
			entry = entry.WithRequestID(requestID)
		}
		if err := c.Errors.Last(); err != nil {
			entry = entry.WithError(err.Err)
		}

		if status >= http.StatusBadRequest {
			route := c.FullPath()
			if route == "" {
				route = "unmatched"
			}
			m.RecordHTTPError(httpErrorType(status), route)
		}

		switch {
		case status >= 500:
			if err := c.Errors.Last(); err != nil {
				sentry.CaptureException(c.Request.Context(), err.Err)
			}
			entry.Error("HTTP request failed")
		case status == http.StatusNotFound:
			entry.Debug("HTTP request not found")
		case status >= 400:
			entry.Warn("HTTP request rejected")
		default:
			entry.Debug("HTTP request completed")
		}
	}
}

func httpErrorType(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return "bad_request"
	case status == http.StatusUnauthorized:
		return "unauthorized"
	case status == http.StatusNotFound:
		return "not_found"
	case status == http.StatusUnprocessableEntity:
		return "validation"
	case status >= 500:
		return "internal"
	default:
		return "client_error"
	}
}
