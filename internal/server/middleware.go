package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smallbiznis/ivoice/internal/state"
)

// IdentityMiddleware enforces the opaque current-user contract: the caller
// either presents no identity (the deployment's single user is assumed) or
// an X-User-ID matching it. Anything else is treated as an absent session.
func IdentityMiddleware(app *state.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader("X-User-ID"); id != "" && id != app.User().ID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"notice": errorNotice("Please log in to continue"),
			})
			return
		}
		c.Next()
	}
}

func RequestLogMiddleware(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http.access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
