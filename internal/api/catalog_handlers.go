package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/testgen/internal/database"
	"github.com/jonesrussell/testgen/internal/domain"
	"github.com/jonesrussell/testgen/internal/logger"
	"github.com/jonesrussell/testgen/internal/selector"
)

// ListBrands handles GET /api/v1/brands
func (h *Handler) ListBrands(c *gin.Context) {
	brands, err := h.brands.List(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list brands", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list brands"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"brands": brands, "total": len(brands)})
}

// CreateBrand handles POST /api/v1/brands
func (h *Handler) CreateBrand(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand := &domain.Brand{
		Name:           req.Name,
		Domain:         req.Domain,
		Status:         defaultBrandStatus(req.Status),
		GlobalTemplate: req.GlobalTemplate,
	}
	if err := h.brands.Create(c.Request.Context(), brand); err != nil {
		h.log.Error("failed to create brand", logger.String("name", req.Name), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create brand"})
		return
	}

	h.log.Info("brand created", logger.Int("id", brand.ID), logger.String("name", brand.Name))

	c.JSON(http.StatusCreated, brand)
}

// GetBrand handles GET /api/v1/brands/:id
func (h *Handler) GetBrand(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	brand, err := h.brands.GetBrand(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.log, "brand", err)
		return
	}

	c.JSON(http.StatusOK, brand)
}

// UpdateBrand handles PUT /api/v1/brands/:id
func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	brand := &domain.Brand{
		ID:             id,
		Name:           req.Name,
		Domain:         req.Domain,
		Status:         defaultBrandStatus(req.Status),
		GlobalTemplate: req.GlobalTemplate,
	}
	if err := h.brands.Update(c.Request.Context(), brand); err != nil {
		respondRepositoryError(c, h.log, "brand", err)
		return
	}
	h.catalog.InvalidateBrand(id)

	c.JSON(http.StatusOK, brand)
}

// DeleteBrand handles DELETE /api/v1/brands/:id
func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	if err := h.brands.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, h.log, "brand", err)
		return
	}
	h.catalog.InvalidateBrand(id)

	h.log.Info("brand deleted", logger.Int("id", id))

	c.JSON(http.StatusOK, gin.H{"message": "brand deleted"})
}

// ListSelectors handles GET /api/v1/selectors
func (h *Handler) ListSelectors(c *gin.Context) {
	brandID, ok := queryInt(c, "brand_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brand_id query parameter is required"})
		return
	}

	selectors, err := h.selectors.ListByBrand(c.Request.Context(), brandID)
	if err != nil {
		h.log.Error("failed to list selectors", logger.Int("brand_id", brandID), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list selectors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"selectors": selectors, "total": len(selectors)})
}

// CreateSelector handles POST /api/v1/selectors
func (h *Handler) CreateSelector(c *gin.Context) {
	var req SelectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !selector.IsValidSyntax(req.Selector) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "selector is not valid CSS"})
		return
	}

	sel := &domain.Selector{
		BrandID:       req.BrandID,
		PageType:      req.PageType,
		Selector:      req.Selector,
		Description:   req.Description,
		Status:        defaultSelectorStatus(req.Status),
		Relationships: req.Relationships,
	}
	if err := h.selectors.Create(c.Request.Context(), sel); err != nil {
		h.log.Error("failed to create selector", logger.String("selector", req.Selector), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create selector"})
		return
	}
	h.catalog.InvalidateBrand(req.BrandID)

	h.log.Info("selector created",
		logger.Int("id", sel.ID),
		logger.Int("brand_id", sel.BrandID),
		logger.String("selector", sel.Selector))

	c.JSON(http.StatusCreated, sel)
}

// UpdateSelector handles PUT /api/v1/selectors/:id
func (h *Handler) UpdateSelector(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req SelectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !selector.IsValidSyntax(req.Selector) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "selector is not valid CSS"})
		return
	}

	sel := &domain.Selector{
		ID:            id,
		BrandID:       req.BrandID,
		PageType:      req.PageType,
		Selector:      req.Selector,
		Description:   req.Description,
		Status:        defaultSelectorStatus(req.Status),
		Relationships: req.Relationships,
	}
	if err := h.selectors.Update(c.Request.Context(), sel); err != nil {
		respondRepositoryError(c, h.log, "selector", err)
		return
	}
	h.catalog.InvalidateBrand(req.BrandID)

	c.JSON(http.StatusOK, sel)
}

// DeleteSelector handles DELETE /api/v1/selectors/:id
func (h *Handler) DeleteSelector(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	sel, err := h.selectors.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.log, "selector", err)
		return
	}
	if err := h.selectors.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, h.log, "selector", err)
		return
	}
	h.catalog.InvalidateBrand(sel.BrandID)

	c.JSON(http.StatusOK, gin.H{"message": "selector deleted"})
}

// ListRules handles GET /api/v1/rules
func (h *Handler) ListRules(c *gin.Context) {
	brandID, ok := queryInt(c, "brand_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brand_id query parameter is required"})
		return
	}

	rules, err := h.rules.ListRules(c.Request.Context(), brandID)
	if err != nil {
		h.log.Error("failed to list rules", logger.Int("brand_id", brandID), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": rules, "total": len(rules)})
}

// CreateRule handles POST /api/v1/rules
func (h *Handler) CreateRule(c *gin.Context) {
	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule := &domain.CodeRule{
		BrandID:     req.BrandID,
		RuleType:    req.RuleType,
		RuleContent: req.RuleContent,
		Priority:    req.Priority,
	}
	if err := h.rules.Create(c.Request.Context(), rule); err != nil {
		h.log.Error("failed to create rule", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create rule"})
		return
	}
	h.catalog.InvalidateBrand(req.BrandID)

	h.log.Info("rule created",
		logger.Int("id", rule.ID),
		logger.Int("brand_id", rule.BrandID),
		logger.String("rule_type", string(rule.RuleType)))

	c.JSON(http.StatusCreated, rule)
}

// UpdateRule handles PUT /api/v1/rules/:id
func (h *Handler) UpdateRule(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule := &domain.CodeRule{
		ID:          id,
		BrandID:     req.BrandID,
		RuleType:    req.RuleType,
		RuleContent: req.RuleContent,
		Priority:    req.Priority,
	}
	if err := h.rules.Update(c.Request.Context(), rule); err != nil {
		respondRepositoryError(c, h.log, "rule", err)
		return
	}
	h.catalog.InvalidateBrand(req.BrandID)

	c.JSON(http.StatusOK, rule)
}

// DeleteRule handles DELETE /api/v1/rules/:id
func (h *Handler) DeleteRule(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	rule, err := h.rules.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.log, "rule", err)
		return
	}
	if err := h.rules.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, h.log, "rule", err)
		return
	}
	h.catalog.InvalidateBrand(rule.BrandID)

	c.JSON(http.StatusOK, gin.H{"message": "rule deleted"})
}

// ListTemplates handles GET /api/v1/templates
func (h *Handler) ListTemplates(c *gin.Context) {
	brandID, ok := queryInt(c, "brand_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brand_id query parameter is required"})
		return
	}
	testType := domain.TestType(c.Query("test_type"))
	if testType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "test_type query parameter is required"})
		return
	}

	templates, err := h.templates.ListActiveTemplates(c.Request.Context(), brandID, testType)
	if err != nil {
		h.log.Error("failed to list templates", logger.Int("brand_id", brandID), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list templates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates, "total": len(templates)})
}

// CreateTemplate handles POST /api/v1/templates
func (h *Handler) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl := &domain.Template{
		BrandID:      req.BrandID,
		TestType:     req.TestType,
		TemplateCode: req.TemplateCode,
		Description:  req.Description,
		Version:      defaultVersion(req.Version),
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := h.templates.Create(c.Request.Context(), tpl); err != nil {
		h.log.Error("failed to create template", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create template"})
		return
	}
	h.catalog.InvalidateBrand(req.BrandID)

	h.log.Info("template created",
		logger.Int("id", tpl.ID),
		logger.Int("brand_id", tpl.BrandID),
		logger.String("test_type", string(tpl.TestType)))

	c.JSON(http.StatusCreated, tpl)
}

// UpdateTemplate handles PUT /api/v1/templates/:id
func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl := &domain.Template{
		ID:           id,
		BrandID:      req.BrandID,
		TestType:     req.TestType,
		TemplateCode: req.TemplateCode,
		Description:  req.Description,
		Version:      defaultVersion(req.Version),
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := h.templates.Update(c.Request.Context(), tpl); err != nil {
		respondRepositoryError(c, h.log, "template", err)
		return
	}
	h.catalog.InvalidateBrand(req.BrandID)

	c.JSON(http.StatusOK, tpl)
}

// DeleteTemplate handles DELETE /api/v1/templates/:id
func (h *Handler) DeleteTemplate(c *gin.Context) {
	id, ok := paramInt(c, "id")
	if !ok {
		return
	}

	tpl, err := h.templates.GetByID(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, h.log, "template", err)
		return
	}
	if err := h.templates.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, h.log, "template", err)
		return
	}
	h.catalog.InvalidateBrand(tpl.BrandID)

	c.JSON(http.StatusOK, gin.H{"message": "template deleted"})
}

// paramInt parses an integer path parameter, responding 400 itself on failure.
func paramInt(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return value, true
}

// queryInt parses an integer query parameter.
func queryInt(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// respondRepositoryError maps repository errors to HTTP status codes.
func respondRepositoryError(c *gin.Context, log logger.Logger, entity string, err error) {
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": entity + " not found"})
		return
	}
	log.Error("repository error", logger.String("entity", entity), logger.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func defaultBrandStatus(s domain.BrandStatus) domain.BrandStatus {
	if s == "" {
		return domain.BrandActive
	}
	return s
}

func defaultSelectorStatus(s domain.SelectorStatus) domain.SelectorStatus {
	if s == "" {
		return domain.SelectorActive
	}
	return s
}

func defaultVersion(v string) string {
	if v == "" {
		return "1.0"
	}
	return v
}
