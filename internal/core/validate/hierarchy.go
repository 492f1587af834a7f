package validate

import (
	"strings"

	"github.com/orglens/orglens/internal/core"
)

// hierarchyValidation scores the finished hierarchy across four independent
// axes (completeness, consistency, asset coverage, cross-reference strength)
// and averages them with equal weight.
func (p *Pipeline) hierarchyValidation(record *core.EnrichedRecord) core.ValidationFinding {
	completeness := completenessScore(record)
	consistency := consistencyScore(record)
	coverage := coverageScore(record)
	crossRefs := crossReferenceScore(record)

	details := map[string]any{
		"hierarchy_completeness": completeness,
		"data_consistency":       consistency,
		"asset_coverage":         coverage,
		"cross_references":       crossRefs,
	}

	overall := (completeness + consistency + coverage + crossRefs) / 4

	var status core.ValidationStatus
	switch {
	case overall >= 85:
		status = core.StatusPassed
	case overall >= 70:
		status = core.StatusWarning
	default:
		status = core.StatusFailed
	}

	return core.ValidationFinding{
		Type:            core.ValidationTypeFinal,
		Status:          status,
		Score:           overall,
		Details:         details,
		Recommendations: hierarchyRecommendations(completeness, consistency, coverage, crossRefs),
	}
}

// completenessScore applies the additive point schedule for present fields.
func completenessScore(record *core.EnrichedRecord) int {
	score := 0
	if record.Name != "" {
		score += 20
	}
	if record.LegalName != "" {
		score += 15
	}
	if record.ColloquialName != "" {
		score += 10
	}
	if len(record.Subsidiaries) > 0 {
		score += 20
	}
	if len(record.Acquisitions) > 0 {
		score += 15
	}
	if len(record.Brands) > 0 {
		score += 20
	}
	return minInt(100, score)
}

// consistencyScore starts at 100 and deducts 20 points per detected issue.
func consistencyScore(record *core.EnrichedRecord) int {
	score := 100

	if record.Name != "" && record.LegalName != "" && strings.EqualFold(record.Name, record.LegalName) {
		score -= 20
	}

	domains := make(map[string]struct{}, len(record.Domains))
	for _, info := range record.Domains {
		domains[info.Domain] = struct{}{}
	}
	if len(domains) != len(record.Domains) {
		score -= 20
	}

	brands := make(map[string]struct{}, len(record.Brands))
	for _, brand := range record.Brands {
		brands[brand] = struct{}{}
	}
	if len(brands) != len(record.Brands) {
		score -= 20
	}

	return maxInt(0, score)
}

// coverageScore rewards live domains, ASN presence, and netblock presence.
func coverageScore(record *core.EnrichedRecord) int {
	score := 0

	for _, info := range record.Domains {
		if info.Active {
			score += 40
			break
		}
	}
	if len(record.ASNs) > 0 {
		score += 30
	}
	if len(record.Netblocks) > 0 {
		score += 30
	}

	return minInt(100, score)
}

// crossReferenceScore rewards term-to-domain and brand-to-domain overlap.
func crossReferenceScore(record *core.EnrichedRecord) int {
	score := 0

	for term := range record.SearchTerms {
		if matchesAnyDomain(term, record.Domains) {
			score += 50
			break
		}
	}
	for _, brand := range record.Brands {
		if brand != "" && matchesAnyDomain(brand, record.Domains) {
			score += 50
			break
		}
	}

	return minInt(100, score)
}

func matchesAnyDomain(value string, domains []core.DomainInfo) bool {
	lower := strings.ToLower(value)
	for _, info := range domains {
		if strings.Contains(strings.ToLower(info.Domain), lower) {
			return true
		}
	}
	return false
}

func hierarchyRecommendations(completeness, consistency, coverage, crossRefs int) []string {
	recommendations := []string{}

	if completeness < 80 {
		recommendations = append(recommendations, "Complete company hierarchy information")
	}
	if consistency < 80 {
		recommendations = append(recommendations, "Resolve data consistency issues")
	}
	if coverage < 70 {
		recommendations = append(recommendations, "Improve digital asset coverage")
	}
	if crossRefs < 70 {
		recommendations = append(recommendations, "Strengthen cross-references between data elements")
	}

	return recommendations
}
