package validate

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/orglens/orglens/internal/core"
)

// Connection links a search term to a domain it appears in. Strength is
// "strong" when term and domain are identical, "weak" otherwise.
type Connection struct {
	Term     string `json:"term"`
	Domain   string `json:"domain"`
	Strength string `json:"strength"`
}

// sourceValidation checks every search term against the record's own fields
// and re-verifies each digital asset. Zero search terms is a hard failure:
// "no data to validate" is distinct from "data that failed validation".
func (p *Pipeline) sourceValidation(ctx context.Context, record *core.EnrichedRecord) core.ValidationFinding {
	details := map[string]any{
		"search_terms_validated": 0,
		"domains_verified":       0,
		"asns_verified":          0,
		"netblocks_verified":     0,
		"connections_found":      0,
	}

	termsValidated := 0
	for _, term := range sortedTerms(record.SearchTerms) {
		if termMatchesRecord(term, record) {
			termsValidated++
		}
	}
	details["search_terms_validated"] = termsValidated

	domainsVerified := 0
	for _, info := range record.Domains {
		if p.verifyDomain(ctx, info.Domain) {
			domainsVerified++
		}
	}
	details["domains_verified"] = domainsVerified

	asnsVerified := 0
	for _, asn := range record.ASNs {
		if verifyASN(asn) {
			asnsVerified++
		}
	}
	details["asns_verified"] = asnsVerified

	netblocksVerified := 0
	for _, netblock := range record.Netblocks {
		if verifyNetblock(netblock) {
			netblocksVerified++
		}
	}
	details["netblocks_verified"] = netblocksVerified

	connections := findConnections(record)
	details["connections_found"] = len(connections)
	if len(connections) > 0 {
		details["connections"] = connections
	}

	totalTerms := len(record.SearchTerms)

	var (
		score  int
		status core.ValidationStatus
	)
	if totalTerms == 0 {
		score = 0
		status = core.StatusFailed
	} else {
		rate := (float64(termsValidated)/float64(totalTerms) +
			float64(domainsVerified)/float64(maxInt(len(record.Domains), 1)) +
			float64(asnsVerified)/float64(maxInt(len(record.ASNs), 1)) +
			float64(netblocksVerified)/float64(maxInt(len(record.Netblocks), 1))) / 4 * 100

		score = minInt(100, int(rate))
		switch {
		case score >= 80:
			status = core.StatusPassed
		case score >= 60:
			status = core.StatusWarning
		default:
			status = core.StatusFailed
		}
	}

	return core.ValidationFinding{
		Type:            core.ValidationTypeSource,
		Status:          status,
		Score:           score,
		Details:         details,
		Recommendations: sourceRecommendations(termsValidated, domainsVerified, len(connections), record),
	}
}

// termMatchesRecord reports whether a term appears in any of the record's
// name-bearing fields or domain names (case-insensitive substring match).
func termMatchesRecord(term string, record *core.EnrichedRecord) bool {
	lower := strings.ToLower(term)

	for _, name := range []string{record.Name, record.LegalName, record.ColloquialName} {
		if name != "" && strings.Contains(strings.ToLower(name), lower) {
			return true
		}
	}
	for _, brand := range record.Brands {
		if brand != "" && strings.Contains(strings.ToLower(brand), lower) {
			return true
		}
	}
	for _, subsidiary := range record.Subsidiaries {
		if subsidiary != "" && strings.Contains(strings.ToLower(subsidiary), lower) {
			return true
		}
	}
	for _, info := range record.Domains {
		if strings.Contains(strings.ToLower(info.Domain), lower) {
			return true
		}
	}
	return false
}

// verifyDomain re-resolves the domain and, when resolution succeeds, probes
// it over plain HTTP. A resolving domain is never penalized merely because
// the application-level probe failed; only a non-error response status or a
// transport failure counts as verified.
func (p *Pipeline) verifyDomain(ctx context.Context, domain string) bool {
	lookupCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	if _, err := p.resolver().LookupHost(lookupCtx, domain); err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+domain, nil)
	if err != nil {
		return true
	}

	resp, err := p.httpClient().Do(req)
	if err != nil {
		// DNS resolves but HTTP might not be available.
		return true
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	return resp.StatusCode < 400
}

// verifyASN applies the syntactic check only; identifiers here are
// placeholders, not registry data.
func verifyASN(asn string) bool {
	return strings.HasPrefix(asn, "AS") && len(asn) > 2
}

// verifyNetblock reports whether the value parses as CIDR notation.
func verifyNetblock(netblock string) bool {
	_, _, err := net.ParseCIDR(netblock)
	return err == nil
}

// findConnections pairs search terms with the domain names they appear in.
func findConnections(record *core.EnrichedRecord) []Connection {
	connections := make([]Connection, 0)
	for _, term := range sortedTerms(record.SearchTerms) {
		lower := strings.ToLower(term)
		for _, info := range record.Domains {
			domain := strings.ToLower(info.Domain)
			if !strings.Contains(domain, lower) {
				continue
			}
			strength := "weak"
			if lower == domain {
				strength = "strong"
			}
			connections = append(connections, Connection{
				Term:     term,
				Domain:   info.Domain,
				Strength: strength,
			})
		}
	}
	return connections
}

func sourceRecommendations(termsValidated, domainsVerified, connections int, record *core.EnrichedRecord) []string {
	recommendations := []string{}

	if float64(termsValidated) < float64(len(record.SearchTerms))*0.8 {
		recommendations = append(recommendations, "Consider adding more search terms or improving existing ones")
	}
	if float64(domainsVerified) < float64(len(record.Domains))*0.8 {
		recommendations = append(recommendations, "Verify domain information and check for inactive domains")
	}
	if float64(connections) < float64(len(record.SearchTerms))*0.5 {
		recommendations = append(recommendations, "Improve connections between search terms and digital assets")
	}

	return recommendations
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
