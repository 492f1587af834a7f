package prepare

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orglens/orglens/internal/core"
	"github.com/orglens/orglens/internal/core/enrich"
)

type stubEnricher struct {
	hosts map[string]string
}

func (s *stubEnricher) Enrich(ctx context.Context, domain string) enrich.DomainInfo {
	info := enrich.DomainInfo{Domain: domain}
	ip, ok := s.hosts[domain]
	if !ok {
		return info
	}
	info.Active = true
	info.IPAddress = ip
	info.ASN = "AS64500"
	info.Netblock = "203.0.113.0/24"
	return info
}

func (s *stubEnricher) Discover(ctx context.Context, term string) []enrich.DomainInfo {
	live := make([]enrich.DomainInfo, 0, 1)
	for _, suffix := range []string{"com", "org", "net", "io", "co"} {
		candidate := term + "." + suffix
		if _, ok := s.hosts[candidate]; ok {
			live = append(live, s.Enrich(ctx, candidate))
		}
	}
	return live
}

type stubProbe struct {
	domains map[string][]string
	asns    map[string][]string
	err     error
}

func (s *stubProbe) ProbeDomains(ctx context.Context, term string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.domains[term], nil
}

func (s *stubProbe) ProbeASNs(ctx context.Context, term string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.asns[term], nil
}

func TestPrepareRequiresName(t *testing.T) {
	pipeline := &Pipeline{Enricher: &stubEnricher{}}

	_, err := pipeline.Prepare(context.Background(), core.CompanyRecord{Name: "   "})
	require.Error(t, err)
}

func TestPrepareMarksAllStages(t *testing.T) {
	pipeline := &Pipeline{Enricher: &stubEnricher{}}

	enriched, err := pipeline.Prepare(context.Background(), core.CompanyRecord{Name: "Acme"})
	require.NoError(t, err)
	require.Equal(t, 0.9, enriched.ConfidenceScores[core.StageDataEntry])
	require.Equal(t, 0.8, enriched.ConfidenceScores[core.StageDomainAssociation])
	require.Equal(t, 0.7, enriched.ConfidenceScores[core.StageDANSCheck])
	require.Equal(t, 0.85, enriched.ConfidenceScores[core.StageEnumeration])
}

func TestPrepareCollectsSearchTerms(t *testing.T) {
	pipeline := &Pipeline{Enricher: &stubEnricher{}}

	record := core.CompanyRecord{
		Name:           "Acme Corp",
		LegalName:      "Acme Corporation Inc",
		ColloquialName: "Acme",
		Brands:         []string{"RoadRunner"},
		Subsidiaries:   []string{"Acme Labs"},
		Acquisitions:   []core.Acquisition{{AcquiredCompany: "Coyote Co"}},
	}

	enriched, err := pipeline.Prepare(context.Background(), record)
	require.NoError(t, err)

	for _, term := range []string{
		"acme corp", "acme corporation inc", "acme",
		"roadrunner", "acme labs", "coyote co",
		// Enumeration variants.
		"acmecorp", "labs", "acmelabs",
	} {
		require.Contains(t, enriched.SearchTerms, term, "missing term %q", term)
	}
}

func TestPrepareEnrichesKnownDomains(t *testing.T) {
	pipeline := &Pipeline{
		Enricher: &stubEnricher{hosts: map[string]string{"acme.com": "203.0.113.10"}},
	}

	record := core.CompanyRecord{Name: "ZZZ Holdings", Domains: []string{"acme.com"}}
	enriched, err := pipeline.Prepare(context.Background(), record)
	require.NoError(t, err)

	require.Len(t, enriched.Domains, 1)
	require.True(t, enriched.Domains[0].Active)
	require.Equal(t, "203.0.113.10", enriched.Domains[0].IPAddress)
	require.Equal(t, []string{"AS64500"}, enriched.ASNs)
	require.Equal(t, []string{"203.0.113.0/24"}, enriched.Netblocks)
}

func TestPrepareDedupesFirstSeen(t *testing.T) {
	pipeline := &Pipeline{
		Enricher: &stubEnricher{hosts: map[string]string{
			"acme.com": "203.0.113.10",
			"acme.io":  "203.0.113.20",
		}},
	}

	// acme.com is both declared up front and discoverable from the name.
	record := core.CompanyRecord{Name: "acme", Domains: []string{"acme.com"}}
	enriched, err := pipeline.Prepare(context.Background(), record)
	require.NoError(t, err)

	names := make([]string, 0, len(enriched.Domains))
	for _, info := range enriched.Domains {
		names = append(names, info.Domain)
	}
	require.Equal(t, []string{"acme.com", "acme.io"}, names)
}

func TestPrepareProbeAddsAssets(t *testing.T) {
	pipeline := &Pipeline{
		Enricher: &stubEnricher{hosts: map[string]string{"acme-cloud.com": "203.0.113.30"}},
		Probe: &stubProbe{
			domains: map[string][]string{"acme": {"acme-cloud.com"}},
			asns:    map[string][]string{"acme": {"AS64501"}},
		},
	}

	enriched, err := pipeline.Prepare(context.Background(), core.CompanyRecord{Name: "acme"})
	require.NoError(t, err)

	require.True(t, enriched.HasDomain("acme-cloud.com"))
	require.Contains(t, enriched.ASNs, "AS64501")
}

func TestPrepareProbeErrorsAbsorbed(t *testing.T) {
	pipeline := &Pipeline{
		Enricher: &stubEnricher{},
		Probe:    &stubProbe{err: errors.New("rdap unavailable")},
	}

	enriched, err := pipeline.Prepare(context.Background(), core.CompanyRecord{Name: "acme"})
	require.NoError(t, err)
	require.Equal(t, 0.7, enriched.ConfidenceScores[core.StageDANSCheck])
}

func TestPrepareKeepsPreEnrichedDomains(t *testing.T) {
	pipeline := &Pipeline{Enricher: &stubEnricher{}}

	record := core.CompanyRecord{Name: "acme"}
	enriched := core.NewEnrichedRecord(record)
	enriched.Domains = []core.DomainInfo{{Domain: "acme.com", Active: true, IPAddress: "203.0.113.10"}}

	// Already-enriched entries pass through untouched.
	pipeline.stageDomainAssociation(context.Background(), enriched)
	require.Len(t, enriched.Domains, 1)
	require.Equal(t, "203.0.113.10", enriched.Domains[0].IPAddress)
}
