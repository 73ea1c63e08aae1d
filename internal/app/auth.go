package app

import (
	"crypto/subtle"
	"net/http"

	"github.com/garyellow/groundwater-bot-go/internal/config"
	"github.com/gin-gonic/gin"
)

const metricsRealm = `Basic realm="metrics"`

// metricsAuthMiddleware enforces Basic Auth on /metrics when cfg.AuthEnabled
// is set and passes every request through otherwise.
func metricsAuthMiddleware(cfg config.MetricsConfig) gin.HandlerFunc {
	wantUser := []byte(cfg.Username)
	wantPass := []byte(cfg.Password)

	return func(c *gin.Context) {
		if !cfg.AuthEnabled {
			c.Next()
			return
		}

		user, pass, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", metricsRealm)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Both comparisons always run so timing does not reveal which one failed.
		userMatch := subtle.ConstantTimeCompare([]byte(user), wantUser) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), wantPass) == 1
		if !userMatch || !passMatch {
			c.Header("WWW-Authenticate", metricsRealm)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}
