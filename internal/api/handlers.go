// Package api exposes the testgen engine over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/jonesrussell/testgen/internal/database"
	"github.com/jonesrussell/testgen/internal/domain"
	"github.com/jonesrussell/testgen/internal/domanalysis"
	"github.com/jonesrussell/testgen/internal/generator"
	"github.com/jonesrussell/testgen/internal/logger"
	"github.com/jonesrussell/testgen/internal/resolver"
	"github.com/jonesrussell/testgen/internal/store"
	"github.com/jonesrussell/testgen/internal/telemetry"
	"github.com/jonesrussell/testgen/internal/validation"
)

// Handler handles HTTP requests for the testgen API
type Handler struct {
	resolver  *resolver.Resolver
	generator *generator.Service
	analyzer  *domanalysis.Analyzer
	catalog   *store.Catalog
	brands    *database.BrandRepository
	selectors *database.SelectorRepository
	rules     *database.RuleRepository
	templates *database.TemplateRepository
	codes     *database.GeneratedCodeRepository
	telemetry *telemetry.Provider
	db        *sqlx.DB
	version   string
	log       logger.Logger
}

// Dependencies bundles everything a Handler needs.
type Dependencies struct {
	Resolver  *resolver.Resolver
	Generator *generator.Service
	Analyzer  *domanalysis.Analyzer
	Catalog   *store.Catalog
	Brands    *database.BrandRepository
	Selectors *database.SelectorRepository
	Rules     *database.RuleRepository
	Templates *database.TemplateRepository
	Codes     *database.GeneratedCodeRepository
	Telemetry *telemetry.Provider
	DB        *sqlx.DB
	Version   string
}

// NewHandler creates a new API handler
func NewHandler(deps Dependencies, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		resolver:  deps.Resolver,
		generator: deps.Generator,
		analyzer:  deps.Analyzer,
		catalog:   deps.Catalog,
		brands:    deps.Brands,
		selectors: deps.Selectors,
		rules:     deps.Rules,
		templates: deps.Templates,
		codes:     deps.Codes,
		telemetry: deps.Telemetry,
		db:        deps.DB,
		version:   deps.Version,
		log:       log,
	}
}

// Resolve handles POST /api/v1/resolve
func (h *Handler) Resolve(c *gin.Context) {
	var req domain.ResolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid resolve request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.BrandID <= 0 || !req.PageType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brand_id and a valid page_type are required"})
		return
	}

	catalog, err := h.catalog.ActiveSelectors(c.Request.Context(), req.BrandID, req.PageType)
	if err != nil {
		h.log.Error("failed to load selector catalog",
			logger.Int("brand_id", req.BrandID), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load selector catalog"})
		return
	}

	start := time.Now()
	result := h.resolver.Resolve(req, catalog)
	h.telemetry.RecordResolution(c.Request.Context(), string(result.Status), len(result.Matches), time.Since(start))
	h.telemetry.SetCatalogSize(len(catalog))

	h.log.Info("description resolved",
		logger.Int("brand_id", req.BrandID),
		logger.String("status", string(result.Status)),
		logger.String("selector", result.ResolvedSelector))

	c.JSON(http.StatusOK, result)
}

// Validate handles POST /api/v1/validate
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid validate request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	rules, err := h.catalog.Rules(ctx, req.BrandID)
	if err != nil {
		h.log.Error("failed to load rules", logger.Int("brand_id", req.BrandID), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rules"})
		return
	}
	selectors, err := h.catalog.ActiveSelectors(ctx, req.BrandID, req.PageType)
	if err != nil {
		h.log.Error("failed to load selector catalog", logger.Int("brand_id", req.BrandID), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load selector catalog"})
		return
	}
	templates, err := h.catalog.Templates(ctx, req.BrandID, req.TestType)
	if err != nil {
		h.log.Error("failed to load templates", logger.Int("brand_id", req.BrandID), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load templates"})
		return
	}

	result := validation.ValidateCode(req.Code, rules, selectors)
	confidence := validation.ScoreConfidence(req.Code, templates, result)
	truncated := validation.IsTruncated(req.Code)

	h.telemetry.RecordValidation(ctx, string(confidence.ValidationStatus),
		len(result.RuleViolations), len(result.InvalidSelectors))

	h.log.Info("code validated",
		logger.Int("brand_id", req.BrandID),
		logger.String("status", string(confidence.ValidationStatus)),
		logger.Float64("confidence", confidence.OverallScore),
		logger.Bool("truncated", truncated))

	c.JSON(http.StatusOK, ValidateResponse{
		Validation:  result,
		Confidence:  confidence,
		IsTruncated: truncated,
	})
}

// Generate handles POST /api/v1/generate
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid generate request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, span := h.telemetry.StartSpan(c.Request.Context(), "generate",
		attribute.Int("brand_id", req.BrandID),
		attribute.String("test_type", string(req.TestType)))
	defer span.End()

	start := time.Now()
	code, err := h.generator.Generate(ctx, generator.Params{
		BrandID:     req.BrandID,
		TestType:    req.TestType,
		PageType:    req.PageType,
		Description: req.Description,
	})
	if err != nil {
		h.telemetry.RecordGeneration(ctx, "error", time.Since(start))
		h.log.Error("generation failed", logger.Int("brand_id", req.BrandID), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	h.telemetry.RecordGeneration(ctx, "success", time.Since(start))
	h.telemetry.RecordGeneratedCode(ctx, code.ConfidenceScore,
		code.IsTruncated, code.PromptTokens, code.CompletionTokens)

	c.JSON(http.StatusOK, code)
}

// Analyze handles POST /api/v1/analyze
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid analyze request", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candidates, err := h.analyzer.Analyze(req.HTML)
	if err != nil {
		h.log.Warn("html analysis failed", logger.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not parse html"})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		Candidates: candidates,
		Total:      len(candidates),
	})
}

// GetGeneratedCode handles GET /api/v1/generated/:id
func (h *Handler) GetGeneratedCode(c *gin.Context) {
	id := c.Param("id")

	code, err := h.codes.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.log, "generated code", err)
		return
	}

	c.JSON(http.StatusOK, code)
}

// ListGeneratedCode handles GET /api/v1/generated
func (h *Handler) ListGeneratedCode(c *gin.Context) {
	brandID, ok := queryInt(c, "brand_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brand_id query parameter is required"})
		return
	}
	limit, _ := queryInt(c, "limit")

	codes, err := h.codes.ListByBrand(c.Request.Context(), brandID, limit)
	if err != nil {
		h.log.Error("failed to list generated code", logger.Int("brand_id", brandID), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list generated code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": codes, "total": len(codes)})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "testgen",
		"version": h.version,
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	dbStatus := "ok"
	status := http.StatusOK
	if h.db != nil {
		if err := h.db.PingContext(c.Request.Context()); err != nil {
			dbStatus = "unreachable"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, gin.H{
		"status": readyStatus(status),
		"checks": gin.H{"postgresql": dbStatus},
	})
}

func readyStatus(code int) string {
	if code == http.StatusOK {
		return "ready"
	}
	return "not_ready"
}
