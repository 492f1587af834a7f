// Package prepare implements the four-stage preparation pipeline that
// expands a raw company record into an enriched, deduplicated asset graph.
package prepare

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/orglens/orglens/internal/core"
	"github.com/orglens/orglens/internal/core/enrich"
	"github.com/orglens/orglens/internal/core/variants"
)

// Confidence markers appended by each stage. Advisory only.
const (
	confidenceDataEntry         = 0.9
	confidenceDomainAssociation = 0.8
	confidenceDANSCheck         = 0.7
	confidenceEnumeration       = 0.85
)

// DomainEnricher resolves domains and discovers live candidates for a term.
type DomainEnricher interface {
	Enrich(ctx context.Context, domain string) enrich.DomainInfo
	Discover(ctx context.Context, term string) []enrich.DomainInfo
}

// Pipeline runs the four ordered preparation stages. Stages execute strictly
// sequentially; each stage's postcondition is the next stage's precondition.
type Pipeline struct {
	Enricher DomainEnricher
	Probe    enrich.AssetProbe
	Logger   *zap.Logger
}

// Prepare expands a raw record into an enriched one. The only rejected input
// is a record without a primary name; missing optional fields are skipped,
// never treated as errors.
func (p *Pipeline) Prepare(ctx context.Context, record core.CompanyRecord) (*core.EnrichedRecord, error) {
	if p == nil {
		return nil, errors.New("preparation pipeline is not configured")
	}
	if strings.TrimSpace(record.Name) == "" {
		return nil, errors.New("company name is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger := p.logger()
	logger.Info("starting preparation", zap.String("company", record.Name))

	enriched := core.NewEnrichedRecord(record)

	p.stageDataEntry(enriched)
	p.stageDomainAssociation(ctx, enriched)
	p.stageDANSCheck(ctx, enriched)
	p.stageEnumeration(enriched)

	logger.Info("completed preparation",
		zap.String("company", record.Name),
		zap.Int("search_terms", len(enriched.SearchTerms)),
		zap.Int("domains", len(enriched.Domains)),
	)
	return enriched, nil
}

// stageDataEntry unions every name-bearing field into the search terms, plus
// the corporate-suffix variants of the primary name.
func (p *Pipeline) stageDataEntry(record *core.EnrichedRecord) {
	record.AddTerm(strings.ToLower(record.Name))
	if record.LegalName != "" {
		record.AddTerm(strings.ToLower(record.LegalName))
	}
	if record.ColloquialName != "" {
		record.AddTerm(strings.ToLower(record.ColloquialName))
	}
	for _, brand := range record.Brands {
		if brand != "" {
			record.AddTerm(strings.ToLower(brand))
		}
	}
	for _, subsidiary := range record.Subsidiaries {
		if subsidiary != "" {
			record.AddTerm(strings.ToLower(subsidiary))
		}
	}
	for _, acquisition := range record.Acquisitions {
		if acquisition.AcquiredCompany != "" {
			record.AddTerm(strings.ToLower(acquisition.AcquiredCompany))
		}
	}

	variants.AddSuffixes(record.Name, record.SearchTerms)

	record.ConfidenceScores[core.StageDataEntry] = confidenceDataEntry
	p.logger().Debug("stage 1 complete", zap.Int("search_terms", len(record.SearchTerms)))
}

// stageDomainAssociation enriches every known domain, discovers additional
// live domains from the search terms, deduplicates first-seen-wins, and
// extracts ASN and netblock identifiers from the surviving entries.
func (p *Pipeline) stageDomainAssociation(ctx context.Context, record *core.EnrichedRecord) {
	combined := make([]core.DomainInfo, 0, len(record.Domains))
	for _, info := range record.Domains {
		if info.IPAddress == "" && !info.Active {
			combined = append(combined, toCoreInfo(p.Enricher.Enrich(ctx, info.Domain)))
		} else {
			combined = append(combined, info)
		}
	}

	for _, term := range sortedTerms(record.SearchTerms) {
		for _, found := range p.Enricher.Discover(ctx, term) {
			combined = append(combined, toCoreInfo(found))
		}
	}

	record.Domains = dedupeDomains(combined)

	for _, info := range record.Domains {
		if info.ASN != "" && !containsString(record.ASNs, info.ASN) {
			record.ASNs = append(record.ASNs, info.ASN)
		}
		if info.Netblock != "" && !containsString(record.Netblocks, info.Netblock) {
			record.Netblocks = append(record.Netblocks, info.Netblock)
		}
	}

	record.ConfidenceScores[core.StageDomainAssociation] = confidenceDomainAssociation
	p.logger().Debug("stage 2 complete",
		zap.Int("domains", len(record.Domains)),
		zap.Int("asns", len(record.ASNs)),
		zap.Int("netblocks", len(record.Netblocks)),
	)
}

// stageDANSCheck sweeps the search terms through the asset probe for domains
// and ASNs that earlier stages missed. Probe failures degrade to "nothing
// found" for that term.
func (p *Pipeline) stageDANSCheck(ctx context.Context, record *core.EnrichedRecord) {
	probe := p.probe()
	found := 0

	for _, term := range sortedTerms(record.SearchTerms) {
		domains, err := probe.ProbeDomains(ctx, term)
		if err != nil {
			p.logger().Debug("domain probe failed", zap.String("term", term), zap.Error(err))
		}
		for _, domain := range domains {
			name := strings.ToLower(strings.TrimSpace(domain))
			if name == "" || record.HasDomain(name) {
				continue
			}
			record.Domains = append(record.Domains, toCoreInfo(p.Enricher.Enrich(ctx, name)))
			found++
		}

		asns, err := probe.ProbeASNs(ctx, term)
		if err != nil {
			p.logger().Debug("asn probe failed", zap.String("term", term), zap.Error(err))
		}
		for _, asn := range asns {
			if asn != "" && !containsString(record.ASNs, asn) {
				record.ASNs = append(record.ASNs, asn)
				found++
			}
		}
	}

	record.ConfidenceScores[core.StageDANSCheck] = confidenceDANSCheck
	p.logger().Debug("stage 3 complete", zap.Int("additional_assets", found))
}

// stageEnumeration unions the lexical variants of every name-bearing field
// into the search terms. The result is a superset of the prior terms.
func (p *Pipeline) stageEnumeration(record *core.EnrichedRecord) {
	for _, name := range []string{record.Name, record.LegalName, record.ColloquialName} {
		if name != "" {
			variants.Add(name, record.SearchTerms)
		}
	}
	for _, brand := range record.Brands {
		if brand != "" {
			variants.Add(brand, record.SearchTerms)
		}
	}
	for _, subsidiary := range record.Subsidiaries {
		if subsidiary != "" {
			variants.Add(subsidiary, record.SearchTerms)
		}
	}

	record.ConfidenceScores[core.StageEnumeration] = confidenceEnumeration
	p.logger().Debug("stage 4 complete", zap.Int("search_terms", len(record.SearchTerms)))
}

func (p *Pipeline) probe() enrich.AssetProbe {
	if p != nil && p.Probe != nil {
		return p.Probe
	}
	return enrich.NoopProbe{}
}

func (p *Pipeline) logger() *zap.Logger {
	if p != nil && p.Logger != nil {
		return p.Logger
	}
	return zap.NewNop()
}

func toCoreInfo(info enrich.DomainInfo) core.DomainInfo {
	return core.DomainInfo{
		Domain:    info.Domain,
		Active:    info.Active,
		IPAddress: info.IPAddress,
		ASN:       info.ASN,
		Netblock:  info.Netblock,
	}
}

// dedupeDomains keeps the first occurrence of each domain name, preserving
// order so results are deterministic given deterministic input ordering.
func dedupeDomains(domains []core.DomainInfo) []core.DomainInfo {
	seen := make(map[string]struct{}, len(domains))
	unique := make([]core.DomainInfo, 0, len(domains))
	for _, info := range domains {
		if _, ok := seen[info.Domain]; ok {
			continue
		}
		seen[info.Domain] = struct{}{}
		unique = append(unique, info)
	}
	return unique
}

func sortedTerms(terms map[string]struct{}) []string {
	out := make([]string, 0, len(terms))
	for term := range terms {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
