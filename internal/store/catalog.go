// Package store layers a short-lived in-memory cache over the database
// repositories. Catalog reads dominate the request mix (every resolve,
// validate and generate call needs them), so they are served from cache
// and refreshed on expiry.
package store

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/jonesrussell/testgen/internal/domain"
	"github.com/jonesrussell/testgen/internal/logger"
)

// BrandReader loads brands from persistent storage.
type BrandReader interface {
	GetBrand(ctx context.Context, id int) (*domain.Brand, error)
}

// SelectorReader loads catalog selectors from persistent storage.
type SelectorReader interface {
	ListActiveSelectors(ctx context.Context, brandID int, pageType domain.PageType) ([]domain.Selector, error)
}

// RuleReader loads code rules from persistent storage.
type RuleReader interface {
	ListRules(ctx context.Context, brandID int) ([]domain.CodeRule, error)
}

// TemplateReader loads templates from persistent storage.
type TemplateReader interface {
	ListActiveTemplates(ctx context.Context, brandID int, testType domain.TestType) ([]domain.Template, error)
}

// Repositories bundles the readers the catalog caches over.
type Repositories struct {
	Brands    BrandReader
	Selectors SelectorReader
	Rules     RuleReader
	Templates TemplateReader
}

// Catalog is a read-through cache over the brand catalog. All methods fall
// back to the underlying repository on a miss and cache the result for the
// configured TTL.
type Catalog struct {
	repos Repositories
	cache *gocache.Cache
	log   logger.Logger
}

// NewCatalog builds a catalog cache with the given TTL. Expired entries are
// swept at twice the TTL.
func NewCatalog(repos Repositories, ttl time.Duration, log logger.Logger) *Catalog {
	if log == nil {
		log = logger.NewNop()
	}
	return &Catalog{
		repos: repos,
		cache: gocache.New(ttl, 2*ttl),
		log:   log,
	}
}

// Brand returns the brand, cached.
func (c *Catalog) Brand(ctx context.Context, brandID int) (*domain.Brand, error) {
	key := brandKey(brandID)
	if v, ok := c.cache.Get(key); ok {
		return v.(*domain.Brand), nil
	}
	brand, err := c.repos.Brands.GetBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, brand)
	return brand, nil
}

// ActiveSelectors returns the active selectors for a brand page, cached.
func (c *Catalog) ActiveSelectors(ctx context.Context, brandID int, pageType domain.PageType) ([]domain.Selector, error) {
	key := selectorsKey(brandID, pageType)
	if v, ok := c.cache.Get(key); ok {
		return v.([]domain.Selector), nil
	}
	selectors, err := c.repos.Selectors.ListActiveSelectors(ctx, brandID, pageType)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, selectors)
	c.log.Debug("selector catalog cached",
		logger.Int("brand_id", brandID),
		logger.String("page_type", string(pageType)),
		logger.Int("selectors", len(selectors)))
	return selectors, nil
}

// Rules returns the brand's code rules, cached.
func (c *Catalog) Rules(ctx context.Context, brandID int) ([]domain.CodeRule, error) {
	key := rulesKey(brandID)
	if v, ok := c.cache.Get(key); ok {
		return v.([]domain.CodeRule), nil
	}
	rules, err := c.repos.Rules.ListRules(ctx, brandID)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, rules)
	return rules, nil
}

// Templates returns the brand's active templates for a test type, cached.
func (c *Catalog) Templates(ctx context.Context, brandID int, testType domain.TestType) ([]domain.Template, error) {
	key := templatesKey(brandID, testType)
	if v, ok := c.cache.Get(key); ok {
		return v.([]domain.Template), nil
	}
	templates, err := c.repos.Templates.ListActiveTemplates(ctx, brandID, testType)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, templates)
	return templates, nil
}

// InvalidateBrand drops every cached entry for a brand. Called after any
// catalog write so the next read sees the change immediately instead of
// waiting out the TTL.
func (c *Catalog) InvalidateBrand(brandID int) {
	c.cache.Delete(brandKey(brandID))
	c.cache.Delete(rulesKey(brandID))
	for _, p := range []domain.PageType{
		domain.PagePDP, domain.PageCart, domain.PageCheckout,
		domain.PageHome, domain.PageCategory, domain.PageSearch,
	} {
		c.cache.Delete(selectorsKey(brandID, p))
	}
	for _, t := range []domain.TestType{
		domain.TestPDP, domain.TestCart, domain.TestCheckout,
		domain.TestHome, domain.TestCategory,
	} {
		c.cache.Delete(templatesKey(brandID, t))
	}
	c.log.Debug("catalog cache invalidated", logger.Int("brand_id", brandID))
}

func brandKey(brandID int) string {
	return fmt.Sprintf("brand:%d", brandID)
}

func selectorsKey(brandID int, pageType domain.PageType) string {
	return fmt.Sprintf("selectors:%d:%s", brandID, pageType)
}

func rulesKey(brandID int) string {
	return fmt.Sprintf("rules:%d", brandID)
}

func templatesKey(brandID int, testType domain.TestType) string {
	return fmt.Sprintf("templates:%d:%s", brandID, testType)
}
