// Package validate implements the two-stage validation pipeline that scores
// an enriched record and emits the final hierarchy document.
package validate

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/orglens/orglens/internal/core"
)

// Resolver is the name-resolution dependency used for re-verification.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Pipeline runs source validation followed by hierarchy validation and owns
// the aggregation rule. Exactly two stages by design; the overall score is
// their arithmetic mean, not a stage-count-general formula.
type Pipeline struct {
	Resolver   Resolver
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *zap.Logger
}

// Validate scores the record and assembles the final hierarchy. The result
// is materialized and returned even when invalid so callers can inspect why.
func (p *Pipeline) Validate(ctx context.Context, record *core.EnrichedRecord) (*core.ValidatedResult, error) {
	if p == nil {
		return nil, errors.New("validation pipeline is not configured")
	}
	if record == nil {
		return nil, errors.New("enriched record is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger := p.logger()
	logger.Info("starting validation", zap.String("company", record.Name))

	findings := []core.ValidationFinding{
		p.sourceValidation(ctx, record),
	}
	findings = append(findings, p.hierarchyValidation(record))

	overall, isValid := aggregate(findings)

	result := &core.ValidatedResult{
		Record:       record,
		Findings:     findings,
		OverallScore: overall,
		IsValid:      isValid,
		Hierarchy:    buildHierarchy(record, findings, overall),
	}

	logger.Info("completed validation",
		zap.String("company", record.Name),
		zap.Float64("overall_score", overall),
		zap.Bool("is_valid", isValid),
	)
	return result, nil
}

// aggregate applies the pipeline's decision rule: overall score is the mean
// of the finding scores, and a result is valid only when the overall score
// reaches 70 and no finding failed outright.
func aggregate(findings []core.ValidationFinding) (float64, bool) {
	if len(findings) == 0 {
		return 0, false
	}

	total := 0
	failed := false
	for _, finding := range findings {
		total += finding.Score
		if finding.Status == core.StatusFailed {
			failed = true
		}
	}

	overall := float64(total) / float64(len(findings))
	return overall, overall >= 70 && !failed
}

// buildHierarchy assembles the §6 hand-off document for persistence and
// reporting collaborators.
func buildHierarchy(record *core.EnrichedRecord, findings []core.ValidationFinding, overall float64) *core.Hierarchy {
	summaries := make([]core.FindingSummary, 0, len(findings))
	for _, finding := range findings {
		summaries = append(summaries, core.FindingSummary{
			Type:   finding.Type,
			Status: finding.Status,
			Score:  finding.Score,
		})
	}

	return &core.Hierarchy{
		Company: core.HierarchyCompany{
			Name:           record.Name,
			LegalName:      record.LegalName,
			ColloquialName: record.ColloquialName,
			ParentCompany:  record.ParentCompany,
		},
		Subsidiaries: append([]string{}, record.Subsidiaries...),
		Brands:       append([]string{}, record.Brands...),
		Acquisitions: append([]core.Acquisition{}, record.Acquisitions...),
		DigitalAssets: core.DigitalAssets{
			Domains:   append([]core.DomainInfo{}, record.Domains...),
			ASNs:      append([]string{}, record.ASNs...),
			Netblocks: append([]string{}, record.Netblocks...),
		},
		SearchTerms: sortedTerms(record.SearchTerms),
		Validation: core.ValidationSummary{
			OverallScore: overall,
			Results:      summaries,
		},
	}
}

func (p *Pipeline) resolver() Resolver {
	if p != nil && p.Resolver != nil {
		return p.Resolver
	}
	return net.DefaultResolver
}

func (p *Pipeline) httpClient() *http.Client {
	if p != nil && p.HTTPClient != nil {
		return p.HTTPClient
	}
	return http.DefaultClient
}

func (p *Pipeline) logger() *zap.Logger {
	if p != nil && p.Logger != nil {
		return p.Logger
	}
	return zap.NewNop()
}

func sortedTerms(terms map[string]struct{}) []string {
	out := make([]string, 0, len(terms))
	for term := range terms {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}
