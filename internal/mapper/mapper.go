// Package mapper composes collection, preparation and validation into the
// end-to-end hierarchy mapping flow shared by the CLI and the server.
package mapper

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/orglens/orglens/internal/collect"
	"github.com/orglens/orglens/internal/core"
	"github.com/orglens/orglens/internal/core/prepare"
	"github.com/orglens/orglens/internal/core/validate"
)

// ErrNotFound reports that no profile page exists for the company.
var ErrNotFound = errors.New("company profile not found")

// AmbiguousError reports that the company name matched a disambiguation
// page rather than a single organization.
type AmbiguousError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("company name %q is ambiguous (%d candidates)", e.Name, len(e.Candidates))
}

// Collector is the profile source.
type Collector interface {
	Collect(ctx context.Context, companyName string) (*collect.PageResult, error)
}

// Mapper runs a company name through the full pipeline stack.
type Mapper struct {
	Collector Collector
	Preparer  *prepare.Pipeline
	Validator *validate.Pipeline
	Logger    *zap.Logger
}

// Map collects a profile for the company, prepares the enriched record and
// validates it. Profile-not-found and disambiguation outcomes surface as
// ErrNotFound and AmbiguousError respectively.
func (m *Mapper) Map(ctx context.Context, company string) (*core.ValidatedResult, error) {
	name := strings.TrimSpace(company)
	if name == "" {
		return nil, errors.New("company name is required")
	}
	if m == nil || m.Collector == nil || m.Preparer == nil || m.Validator == nil {
		return nil, errors.New("mapper is not fully configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	page, err := m.Collector.Collect(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("collect profile: %w", err)
	}

	switch page.Outcome {
	case collect.OutcomeNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	case collect.OutcomeDisambiguation:
		return nil, &AmbiguousError{Name: name, Candidates: page.Candidates}
	}

	enriched, err := m.Preparer.Prepare(ctx, page.Record)
	if err != nil {
		return nil, fmt.Errorf("prepare record: %w", err)
	}

	result, err := m.Validator.Validate(ctx, enriched)
	if err != nil {
		return nil, fmt.Errorf("validate record: %w", err)
	}

	m.logger().Info("mapped company hierarchy",
		zap.String("company", name),
		zap.Float64("overall_score", result.OverallScore),
		zap.Bool("is_valid", result.IsValid),
	)
	return result, nil
}

func (m *Mapper) logger() *zap.Logger {
	if m != nil && m.Logger != nil {
		return m.Logger
	}
	return zap.NewNop()
}
