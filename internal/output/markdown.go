package output

import (
	"fmt"
	"strings"

	"github.com/orglens/orglens/internal/core"
)

// MarkdownFormatter renders results as markdown.
type MarkdownFormatter struct{}

// FormatResult renders the hierarchy and findings as a markdown report.
func (f *MarkdownFormatter) FormatResult(result *core.ValidatedResult) (string, error) {
	if result == nil || result.Hierarchy == nil {
		return "", nil
	}
	hierarchy := result.Hierarchy

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", hierarchy.Company.Name)
	fmt.Fprintf(&sb, "Overall score: %.1f/100 (%s)\n\n", result.OverallScore, verdict(result))

	if hierarchy.Company.LegalName != "" {
		fmt.Fprintf(&sb, "- Legal name: %s\n", hierarchy.Company.LegalName)
	}
	if hierarchy.Company.ColloquialName != "" {
		fmt.Fprintf(&sb, "- Colloquial name: %s\n", hierarchy.Company.ColloquialName)
	}
	if len(hierarchy.Subsidiaries) > 0 {
		fmt.Fprintf(&sb, "- Subsidiaries: %s\n", strings.Join(hierarchy.Subsidiaries, ", "))
	}
	if len(hierarchy.Brands) > 0 {
		fmt.Fprintf(&sb, "- Brands: %s\n", strings.Join(hierarchy.Brands, ", "))
	}
	if len(hierarchy.Acquisitions) > 0 {
		names := make([]string, 0, len(hierarchy.Acquisitions))
		for _, acquisition := range hierarchy.Acquisitions {
			names = append(names, acquisition.AcquiredCompany)
		}
		fmt.Fprintf(&sb, "- Acquisitions: %s\n", strings.Join(names, ", "))
	}

	if len(hierarchy.DigitalAssets.Domains) > 0 {
		sb.WriteString("\n### Digital assets\n\n")
		sb.WriteString("| Domain | Status | ASN | Netblock |\n")
		sb.WriteString("| --- | --- | --- | --- |\n")
		for _, info := range hierarchy.DigitalAssets.Domains {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				info.Domain, liveness(info.Active), info.ASN, info.Netblock)
		}
	}

	sb.WriteString("\n### Validation\n\n")
	for _, finding := range result.Findings {
		fmt.Fprintf(&sb, "- **%s**: %s, %d/100\n", finding.Type, statusLabel(finding.Status), finding.Score)
		for _, recommendation := range finding.Recommendations {
			fmt.Fprintf(&sb, "  - %s\n", recommendation)
		}
	}

	return sb.String(), nil
}
