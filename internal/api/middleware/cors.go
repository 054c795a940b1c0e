package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.DefaultConfig()
	conf.AllowOrigins = allowedDomains
	conf.AllowCredentials = true
	conf.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions}
	conf.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
		"X-Request-ID",
	}
	conf.ExposeHeaders = []string{"Content-Length", "X-Request-ID"}
	conf.MaxAge = 12 * time.Hour

	return cors.New(conf)
}
