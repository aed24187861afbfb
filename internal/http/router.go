// Package httpapi wires the Gin transport to the dashboard services,
// middleware and handlers. Cross-cutting concerns live here: tracing,
// correlation ids, access logging, panic recovery, compression, metrics,
// idempotency, rate limiting, CORS and security headers.
//
// Middleware order:
//  1. OpenTelemetry
//  2. RequestID, then Identity (X-User-ID)
//  3. AccessLog with redaction
//  4. Recovery
//  5. Body size limit and gzip
//  6. Metrics
//  7. Idempotency validator (before the limiter so replays bypass it)
//  8. Rate limiter per client IP
//  9. CORS and security headers
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tbourn/go-marketplace-backend/docs"
	"github.com/tbourn/go-marketplace-backend/internal/config"
	"github.com/tbourn/go-marketplace-backend/internal/http/handlers"
	"github.com/tbourn/go-marketplace-backend/internal/http/middleware"
	"github.com/tbourn/go-marketplace-backend/internal/repo"
)

const maxBodyBytes = 1 << 20

var (
	corsMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsHeaders = []string{
		"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match",
		middleware.HeaderUserID, middleware.HeaderIdempotencyKey,
	}
	corsExpose = []string{"X-Request-ID", "Content-Length", "ETag", "Idempotent-Replay", "Retry-After"}
)

// RegisterRoutes attaches the middleware chain and every dashboard endpoint
// to r. The API is mounted under cfg.APIBasePath.
func RegisterRoutes(r *gin.Engine, d Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID(), middleware.Identity())
	r.Use(middleware.AccessLog(middleware.LogOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	idem := d.Stores.Idempotency
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
			Scope:  handlers.IdempotencyScope(cfg.APIBasePath),
		},
		func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
			if idem == nil {
				return false, nil
			}
			rec, err := idem.GetIdempotency(ctx, userID, scope, key, now)
			if errors.Is(err, repo.ErrNotFound) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			return rec != nil, nil
		},
	))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	useCORS(r, cfg.CORS.AllowedOrigins)

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := newHandlers(d, cfg.PayoutCron, cfg.IdempotencyTTL)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Royalties and ideas
		api.GET("/royalties", h.ListRoyalties)
		api.GET("/royalties/summary", h.RoyaltySummary)
		api.GET("/royalties/:id", h.GetRoyalty)
		api.GET("/ideas", h.ListIdeas)

		// Payouts
		api.GET("/payouts", h.ListPayouts)
		api.GET("/payouts/method", h.GetPayoutMethod)
		api.PUT("/payouts/method/designer", h.UpdateDesignerMethod)
		api.PUT("/payouts/method/seller", h.UpdateSellerMethod)
		api.GET("/payouts/next", h.NextPayout)

		// Inbox
		api.GET("/conversations", h.ListConversations)
		api.GET("/conversations/:id", h.GetConversation)
		api.GET("/conversations/:id/messages", h.ListConversationMessages)
		api.POST("/conversations/:id/messages", h.SendMessage)
		api.POST("/conversations/:id/read", h.MarkConversationRead)

		// Support
		api.GET("/cases", h.ListCases)
		api.POST("/cases", h.CreateCase)
		api.GET("/cases/:id", h.GetCase)
		api.POST("/cases/:id/status", h.TransitionCase)
		api.POST("/cases/:id/assign", h.AssignCase)
		api.GET("/cases/:id/messages", h.ListCaseMessages)
		api.POST("/cases/:id/messages", h.AddCaseMessage)
		api.GET("/cases/:id/attachments", h.ListCaseAttachments)
		api.POST("/cases/:id/attachments", h.AddCaseAttachment)
		api.GET("/support/articles", h.SuggestArticles)

		// Profile
		api.GET("/profile", h.GetProfile)
		api.PUT("/profile", h.SaveProfile)
	}
}

// useCORS allows every origin when none are configured. Otherwise only the
// listed origins are echoed back.
func useCORS(r *gin.Engine, origins []string) {
	if len(origins) == 0 {
		// ACAO is set even without an Origin header so plain probes see it.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins: true,
			AllowMethods:    corsMethods,
			AllowHeaders:    corsHeaders,
			ExposeHeaders:   corsExpose,
			MaxAge:          12 * time.Hour,
		}))
		return
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	r.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				h := c.Writer.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
		}
		c.Next()
	})
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  corsMethods,
		AllowHeaders:  corsHeaders,
		ExposeHeaders: corsExpose,
		MaxAge:        12 * time.Hour,
	}))
}

// limitBody caps request bodies at maxBytes; reads past the cap fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
