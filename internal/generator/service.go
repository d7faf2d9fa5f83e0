package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/testgen/internal/domain"
	"github.com/jonesrussell/testgen/internal/logger"
	"github.com/jonesrussell/testgen/internal/validation"
)

// CatalogSource supplies the brand context a generation call needs.
type CatalogSource interface {
	Brand(ctx context.Context, brandID int) (*domain.Brand, error)
	ActiveSelectors(ctx context.Context, brandID int, pageType domain.PageType) ([]domain.Selector, error)
	Rules(ctx context.Context, brandID int) ([]domain.CodeRule, error)
	Templates(ctx context.Context, brandID int, testType domain.TestType) ([]domain.Template, error)
}

// CodeStore persists generation results for human review.
type CodeStore interface {
	SaveGeneratedCode(ctx context.Context, code *domain.GeneratedCode) error
}

// Params describes one generation request.
type Params struct {
	BrandID     int
	TestType    domain.TestType
	PageType    domain.PageType
	Description string
}

// Service runs the full generation pipeline: prompt assembly, the provider
// call, response parsing, placeholder substitution, validation, confidence
// scoring, truncation detection, and persistence.
type Service struct {
	provider Provider
	catalog  CatalogSource
	codes    CodeStore
	log      logger.Logger
	now      func() time.Time
}

// NewService wires the generation pipeline.
func NewService(provider Provider, catalog CatalogSource, codes CodeStore, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		provider: provider,
		catalog:  catalog,
		codes:    codes,
		log:      log,
		now:      time.Now,
	}
}

// Generate produces, scores, and stores one test script. Unlike the
// resolution and validation cores, generation can fail: the provider call and
// the catalog reads are external.
func (s *Service) Generate(ctx context.Context, p Params) (*domain.GeneratedCode, error) {
	brand, err := s.catalog.Brand(ctx, p.BrandID)
	if err != nil {
		return nil, fmt.Errorf("load brand %d: %w", p.BrandID, err)
	}
	selectors, err := s.catalog.ActiveSelectors(ctx, p.BrandID, p.PageType)
	if err != nil {
		return nil, fmt.Errorf("load selectors: %w", err)
	}
	rules, err := s.catalog.Rules(ctx, p.BrandID)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	templates, err := s.catalog.Templates(ctx, p.BrandID, p.TestType)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	prompt := BuildPrompt(*brand, templates, selectors, rules, p.Description)

	resp, err := s.provider.Generate(ctx, Request{Prompt: prompt, System: systemPrompt})
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", s.provider.Name(), err)
	}

	code := ParseResponse(resp.Text)
	if code == "" {
		return nil, fmt.Errorf("provider %s returned no usable code", s.provider.Name())
	}
	code = ReplacePlaceholders(code, p.Description, s.now())

	result := validation.ValidateCode(code, rules, selectors)
	breakdown := validation.ScoreConfidence(code, templates, result)
	truncated := validation.IsTruncated(code) || resp.StopReason == StopMaxTokens

	record := &domain.GeneratedCode{
		ID:               uuid.NewString(),
		BrandID:          p.BrandID,
		TestType:         p.TestType,
		Description:      p.Description,
		Code:             code,
		ConfidenceScore:  breakdown.OverallScore,
		Breakdown:        &breakdown,
		ValidationStatus: breakdown.ValidationStatus,
		Recommendation:   breakdown.Recommendation,
		IsTruncated:      truncated,
		PromptTokens:     int(resp.PromptTokens),
		CompletionTokens: int(resp.CompletionTokens),
		CreatedAt:        s.now().UTC(),
	}

	if err := s.codes.SaveGeneratedCode(ctx, record); err != nil {
		return nil, fmt.Errorf("persist generated code: %w", err)
	}

	s.log.Info("code generated",
		logger.String("id", record.ID),
		logger.Int("brand_id", p.BrandID),
		logger.Float64("confidence", record.ConfidenceScore),
		logger.String("status", string(record.ValidationStatus)),
		logger.Bool("truncated", record.IsTruncated))

	return record, nil
}
