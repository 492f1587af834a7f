package validate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orglens/orglens/internal/core"
)

func TestSourceValidationZeroTermsFails(t *testing.T) {
	pipeline := &Pipeline{Resolver: &stubResolver{}}
	record := core.NewEnrichedRecord(core.CompanyRecord{Name: "Acme"})

	finding := pipeline.sourceValidation(context.Background(), record)
	require.Equal(t, core.StatusFailed, finding.Status)
	require.Equal(t, 0, finding.Score)
	require.Equal(t, 0, finding.Details["search_terms_validated"])
}

func TestSourceValidationThresholds(t *testing.T) {
	// All four ratios perfect except domains: 0 verified out of 1.
	pipeline := &Pipeline{Resolver: &stubResolver{}}

	record := core.NewEnrichedRecord(core.CompanyRecord{Name: "Acme"})
	record.AddTerm("acme")
	record.Domains = []core.DomainInfo{{Domain: "unresolvable.example"}}
	record.ASNs = []string{"AS64500"}
	record.Netblocks = []string{"203.0.113.0/24"}

	finding := pipeline.sourceValidation(context.Background(), record)
	// (1 + 0 + 1 + 1) / 4 * 100 = 75
	require.Equal(t, 75, finding.Score)
	require.Equal(t, core.StatusWarning, finding.Status)
	require.Contains(t, finding.Recommendations, "Verify domain information and check for inactive domains")
}

func TestSourceValidationRecommendations(t *testing.T) {
	pipeline := &Pipeline{Resolver: &stubResolver{}}

	record := core.NewEnrichedRecord(core.CompanyRecord{Name: "Acme"})
	record.AddTerm("zzz-unrelated")

	finding := pipeline.sourceValidation(context.Background(), record)
	require.Equal(t, core.StatusFailed, finding.Status)
	require.Contains(t, finding.Recommendations, "Consider adding more search terms or improving existing ones")
	require.Contains(t, finding.Recommendations, "Improve connections between search terms and digital assets")
}

func TestTermMatchesRecord(t *testing.T) {
	record := core.NewEnrichedRecord(core.CompanyRecord{
		Name:         "Acme Corp",
		Brands:       []string{"RoadRunner"},
		Subsidiaries: []string{"Acme Labs"},
	})
	record.Domains = []core.DomainInfo{{Domain: "anvil-online.com"}}

	require.True(t, termMatchesRecord("acme", record))
	require.True(t, termMatchesRecord("roadrunner", record))
	require.True(t, termMatchesRecord("labs", record))
	require.True(t, termMatchesRecord("anvil", record))
	require.False(t, termMatchesRecord("coyote", record))
}

func TestVerifyDomainUnresolved(t *testing.T) {
	pipeline := &Pipeline{Resolver: &stubResolver{}}
	require.False(t, pipeline.verifyDomain(context.Background(), "nosuch.example"))
}

func TestVerifyDomainHTTPFailureStillVerified(t *testing.T) {
	pipeline := &Pipeline{
		Resolver:   &stubResolver{hosts: map[string][]string{"acme.com": {"203.0.113.10"}}},
		HTTPClient: &http.Client{Transport: failingTransport{}},
	}
	require.True(t, pipeline.verifyDomain(context.Background(), "acme.com"))
}

func TestVerifyDomainErrorStatus(t *testing.T) {
	probe := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer probe.Close()

	host := strings.TrimPrefix(probe.URL, "http://")
	pipeline := &Pipeline{
		Resolver: &stubResolver{hosts: map[string][]string{host: {"127.0.0.1"}}},
	}
	require.False(t, pipeline.verifyDomain(context.Background(), host))
}

func TestVerifyASN(t *testing.T) {
	require.True(t, verifyASN("AS64500"))
	require.False(t, verifyASN("AS"))
	require.False(t, verifyASN("64500"))
	require.False(t, verifyASN(""))
}

func TestVerifyNetblock(t *testing.T) {
	require.True(t, verifyNetblock("203.0.113.0/24"))
	require.True(t, verifyNetblock("2001:db8::/48"))
	require.False(t, verifyNetblock("203.0.113.10"))
	require.False(t, verifyNetblock("not a cidr"))
}

func TestFindConnections(t *testing.T) {
	record := core.NewEnrichedRecord(core.CompanyRecord{Name: "acme"})
	record.AddTerm("acme")
	record.AddTerm("acme.com")
	record.Domains = []core.DomainInfo{{Domain: "acme.com"}}

	connections := findConnections(record)
	require.Len(t, connections, 2)
	require.Equal(t, "weak", connections[0].Strength)
	require.Equal(t, "strong", connections[1].Strength)
}
