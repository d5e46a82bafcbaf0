// Package router configures the gin engine and attaches all API routes.
package router

import (
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	docs "github.com/pocketledger/backend/api"
	v4 "github.com/pocketledger/backend/internal/controllers/v4"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the gin engine with all middlewares. The returned teardown
// function releases the Prometheus collectors and must be called when the
// engine is discarded.
func Config(url *url.URL) (*gin.Engine, func(), error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(url))
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("CORS Allowed Origins", allowOrigins).Msg("Router")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	err := registerPrometheusMetrics()
	if err != nil {
		return nil, nil, err
	}

	log.Debug().Str("API Base URL", url.String()).Str("Host", url.Host).Str("Path", url.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = url.Host
	docs.SwaggerInfo.BasePath = url.Path
	docs.SwaggerInfo.Title = "Pocketledger"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Pocketledger, a personal finance tracker with monthly budgets that roll over."

	teardown := func() {
		unregisterPrometheusMetrics()
	}

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
// Separating this from Config allows attaching them to different paths for
// different use cases.
func AttachRoutes(group *gin.RouterGroup) {
	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/healthz", GetHealth)
	group.OPTIONS("/healthz", OptionsHealth)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pprof performance profiles
	enablePprof, ok := os.LookupEnv("ENABLE_PPROF")
	if ok && enablePprof == "true" {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v4 setup
	apiV4 := group.Group("/v4")
	{
		apiV4.GET("", GetV4)
		apiV4.DELETE("", v4.Cleanup)
		apiV4.OPTIONS("", OptionsV4)
	}

	v4.RegisterCategoryRoutes(apiV4.Group("/categories"))
	v4.RegisterCategoryGroupRoutes(apiV4.Group("/category-groups"))
	v4.RegisterTransactionRoutes(apiV4.Group("/transactions"))
	v4.RegisterBudgetRoutes(apiV4.Group("/budgets"))
	v4.RegisterMonthRoutes(apiV4.Group("/months"))
	v4.RegisterExportRoutes(apiV4.Group("/export"))
	v4.RegisterImportRoutes(apiV4.Group("/import"))
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`      // Health check endpoint
	Version string `json:"version" example:"https://example.com/api/version"`      // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`      // Prometheus metrics
	V4      string `json:"v4" example:"https://example.com/api/v4"`                // List endpoint for all v4 endpoints
}

// GetRoot returns the link list for the API root
//
//	@Summary		API root
//	@Description	Entrypoint for the API, listing all endpoints
//	@Tags			General
//	@Success		200	{object}	RootResponse
//	@Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V4:      url + "/v4",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}
type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// GetVersion returns the API version object
//
//	@Summary		API version
//	@Description	Returns the software version of the API
//	@Tags			General
//	@Success		200	{object}	VersionResponse
//	@Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// GetHealth checks that the database responds
//
//	@Summary		Health
//	@Description	Returns the health of the backend, checking the database connection
//	@Tags			General
//	@Success		204
//	@Failure		500	{object}	HealthResponse
//	@Router			/healthz [get]
func GetHealth(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, HealthResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

type HealthResponse struct {
	Error *string `json:"error" example:"sql: database is closed"` // The error, if any occurred
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsVersion returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsHealth returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			General
//	@Success		204
//	@Router			/healthz [options]
func OptionsHealth(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V4Response struct {
	Links V4Links `json:"links"` // Links for the v4 API
}

type V4Links struct {
	Categories     string `json:"categories" example:"https://example.com/api/v4/categories"`          // URL of the category endpoints
	CategoryGroups string `json:"categoryGroups" example:"https://example.com/api/v4/category-groups"` // URL of the category group endpoints
	Transactions   string `json:"transactions" example:"https://example.com/api/v4/transactions"`      // URL of the transaction endpoints
	Budgets        string `json:"budgets" example:"https://example.com/api/v4/budgets"`                // URL of the budget endpoints
	Months         string `json:"months" example:"https://example.com/api/v4/months"`                  // URL of the month report endpoint
	Export         string `json:"export" example:"https://example.com/api/v4/export"`                  // URL of the export endpoint
	Import         string `json:"import" example:"https://example.com/api/v4/import"`                  // URL of the import endpoint
}

// GetV4 returns the link list for v4
//
//	@Summary		v4 API
//	@Description	Returns general information about the v4 API
//	@Tags			v4
//	@Success		200	{object}	V4Response
//	@Router			/v4 [get]
func GetV4(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, V4Response{
		Links: V4Links{
			Categories:     url + "/v4/categories",
			CategoryGroups: url + "/v4/category-groups",
			Transactions:   url + "/v4/transactions",
			Budgets:        url + "/v4/budgets",
			Months:         url + "/v4/months",
			Export:         url + "/v4/export",
			Import:         url + "/v4/import",
		},
	})
}

// OptionsV4 returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v4
//	@Success		204
//	@Router			/v4 [options]
func OptionsV4(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
