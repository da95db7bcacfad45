package middleware

import (
	"fmt"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/frontdesk-api/internal/handler"
)

const HeaderAPIVersion = "X-API-Version"

// VersionConfig lists the versions a route group answers to. Requests may
// pick one with HeaderName; otherwise Current is assumed.
type VersionConfig struct {
	HeaderName string
	Current    string
	Supported  []string
}

func DefaultVersionConfig() VersionConfig {
	return VersionConfig{
		HeaderName: "Accept-Version",
		Current:    "1.0",
		Supported:  []string{"1.0"},
	}
}

var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)$`)

// Version rejects unsupported Accept-Version values and echoes the served
// version in X-API-Version.
func Version(config VersionConfig) gin.HandlerFunc {
	supported := make(map[string]bool, len(config.Supported))
	for _, v := range config.Supported {
		supported[v] = true
	}

	return func(c *gin.Context) {
		requested := c.GetHeader(config.HeaderName)
		if requested == "" {
			requested = config.Current
		}

		if !versionPattern.MatchString(requested) {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				handler.NewErrorResponse("invalid version format, use major.minor"))
			return
		}
		if !supported[requested] {
			c.AbortWithStatusJSON(http.StatusNotAcceptable,
				handler.NewErrorResponse(fmt.Sprintf("API version %s not supported", requested)))
			return
		}

		c.Header(HeaderAPIVersion, requested)
		c.Next()
	}
}
