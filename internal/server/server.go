// Package server implements the local stub backend started by
// `adforge serve`: the datasource, rule, and generation endpoints the
// wizard talks to, served from in-memory fixtures so the tool works end to
// end without a real backend.
package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/adforge/adforge-cli/pkg/api"
	"github.com/adforge/adforge-cli/pkg/hierarchy"
	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/pattern"
	"github.com/adforge/adforge-cli/pkg/platforms"
	"github.com/adforge/adforge-cli/pkg/rules"
)

// Server wires fixtures, metrics, and routes.
type Server struct {
	fixtures *Fixtures
	log      *logrus.Logger
	registry *prometheus.Registry
	metrics  *Metrics
}

// New creates a stub server over the given fixtures. Each server carries
// its own prometheus registry so repeated construction never collides.
func New(fixtures *Fixtures, log *logrus.Logger) *Server {
	if fixtures == nil {
		fixtures = DemoFixtures()
	}
	if log == nil {
		log = logrus.New()
	}
	registry := prometheus.NewRegistry()
	return &Server{
		fixtures: fixtures,
		log:      log,
		registry: registry,
		metrics:  NewMetrics(registry),
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	router.Use(s.metrics.Middleware())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Content-Type"}
	router.Use(cors.New(config))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/datasources", s.listDataSources)
		apiGroup.GET("/datasources/:id/columns", s.getColumns)
		apiGroup.GET("/datasources/:id/rows", s.getRows)
		apiGroup.GET("/rules", s.listRules)
		apiGroup.POST("/generate", s.generate)
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))
	return router
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.WithField("addr", addr).Info("stub backend listening")
	if err := s.Router().Run(addr); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}).Debug("request")
	}
}

func (s *Server) listDataSources(c *gin.Context) {
	out := make([]models.DataSource, 0, len(s.fixtures.Sources))
	for _, sf := range s.fixtures.Sources {
		out = append(out, sf.Source)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getColumns(c *gin.Context) {
	sf := s.fixtures.findSource(c.Param("id"))
	if sf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "data source not found"})
		return
	}
	c.JSON(http.StatusOK, sf.Columns)
}

func (s *Server) getRows(c *gin.Context) {
	sf := s.fixtures.findSource(c.Param("id"))
	if sf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "data source not found"})
		return
	}

	rows := sf.Rows
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if limit < len(rows) {
			rows = rows[:limit]
		}
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) listRules(c *gin.Context) {
	c.JSON(http.StatusOK, s.fixtures.Rules)
}

// generate runs the same aggregation the wizard previews, one pass per
// selected platform, and reports what would have been created. Real
// campaign creation is the production backend's job, not the stub's.
func (s *Server) generate(c *gin.Context) {
	var req api.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	sf := s.fixtures.findSource(req.DataSourceID)
	if sf == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "data source not found"})
		return
	}
	if len(req.Platforms) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one platform is required"})
		return
	}

	selected := rules.Select(s.fixtures.Rules, req.RuleIDs)
	rows, excluded := rules.Apply(selected, sf.Rows)
	preview := hierarchy.Aggregate(req.Campaign.NamePattern, req.Hierarchy.AdGroups, rows)

	result := models.GenerationResult{
		Stats: preview.Stats(len(rows), excluded),
	}
	for _, p := range req.Platforms {
		for _, campaign := range preview.Campaigns {
			ads := 0
			for _, g := range campaign.AdGroups {
				ads += len(g.Ads)
			}
			result.Campaigns = append(result.Campaigns, models.GeneratedCampaign{
				ID:       uuid.NewString(),
				Name:     campaign.Name,
				Platform: p,
				AdGroups: len(campaign.AdGroups),
				Ads:      ads,
			})
		}
		result.Warnings = append(result.Warnings, limitWarnings(p, preview)...)
	}

	s.metrics.GenerationsRun.Inc()
	s.log.WithFields(logrus.Fields{
		"source":    req.DataSourceID,
		"platforms": len(req.Platforms),
		"campaigns": result.Stats.CampaignCount,
	}).Info("generation processed")

	c.JSON(http.StatusOK, result)
}

// limitWarnings flags interpolated text exceeding the platform's character
// limits, and ads whose headline still carries an unresolved variable.
func limitWarnings(p models.Platform, preview *hierarchy.GroupedPreview) []string {
	limits, ok := platforms.For(p)
	if !ok {
		return []string{fmt.Sprintf("unknown platform %q, limits not checked", p)}
	}

	var warnings []string
	for _, campaign := range preview.Campaigns {
		if ok, over := platforms.CheckText(campaign.Name, limits.CampaignName); !ok {
			warnings = append(warnings, fmt.Sprintf("%s: campaign name %q exceeds limit by %d characters", p, campaign.Name, over))
		}
		for _, g := range campaign.AdGroups {
			for _, ad := range g.Ads {
				if ok, over := platforms.CheckText(ad.Headline, limits.Headline); !ok {
					warnings = append(warnings, fmt.Sprintf("%s: headline %q exceeds limit by %d characters", p, ad.Headline, over))
				}
				if ok, over := platforms.CheckText(ad.Description, limits.Description); !ok {
					warnings = append(warnings, fmt.Sprintf("%s: description %q exceeds limit by %d characters", p, ad.Description, over))
				}
				if len(pattern.FindVariables(ad.Headline)) > 0 {
					warnings = append(warnings, fmt.Sprintf("%s: headline %q still contains an unresolved variable", p, ad.Headline))
				}
			}
		}
	}
	return warnings
}
