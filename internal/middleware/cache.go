package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CacheConfig describes the Cache-Control policy for a route group.
type CacheConfig struct {
	MaxAge         time.Duration
	Private        bool
	MustRevalidate bool
	Vary           []string
}

// CacheControl replaces the default no-store policy on GET responses. Other
// methods keep no-store.
func CacheControl(config CacheConfig) gin.HandlerFunc {
	value := cacheDirectives(config)
	vary := strings.Join(config.Vary, ", ")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Header("Cache-Control", "no-store")
			c.Next()
			return
		}

		c.Header("Cache-Control", value)
		if vary != "" {
			c.Writer.Header().Add("Vary", vary)
		}
		c.Next()
	}
}

func cacheDirectives(config CacheConfig) string {
	if config.MaxAge <= 0 {
		return "no-cache"
	}

	directives := []string{"public"}
	if config.Private {
		directives[0] = "private"
	}
	directives = append(directives, fmt.Sprintf("max-age=%d", int(config.MaxAge.Seconds())))
	if config.MustRevalidate {
		directives = append(directives, "must-revalidate")
	}
	return strings.Join(directives, ", ")
}
