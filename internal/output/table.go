package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/orglens/orglens/internal/core"
)

// TableFormatter renders results as ASCII tables.
type TableFormatter struct{}

// FormatResult renders the hierarchy and validation findings as tables.
func (f *TableFormatter) FormatResult(result *core.ValidatedResult) (string, error) {
	if result == nil || result.Hierarchy == nil {
		return "", nil
	}
	hierarchy := result.Hierarchy

	var sb strings.Builder

	company := table.NewWriter()
	company.SetStyle(table.StyleRounded)
	company.AppendHeader(table.Row{"Company", hierarchy.Company.Name})
	if hierarchy.Company.LegalName != "" {
		company.AppendRow(table.Row{"Legal name", hierarchy.Company.LegalName})
	}
	if hierarchy.Company.ColloquialName != "" {
		company.AppendRow(table.Row{"Colloquial name", hierarchy.Company.ColloquialName})
	}
	if hierarchy.Company.ParentCompany != "" {
		company.AppendRow(table.Row{"Parent company", hierarchy.Company.ParentCompany})
	}
	company.AppendRow(table.Row{"Subsidiaries", len(hierarchy.Subsidiaries)})
	company.AppendRow(table.Row{"Brands", len(hierarchy.Brands)})
	company.AppendRow(table.Row{"Acquisitions", len(hierarchy.Acquisitions)})
	company.AppendRow(table.Row{"Search terms", len(hierarchy.SearchTerms)})
	sb.WriteString(company.Render())

	if len(hierarchy.DigitalAssets.Domains) > 0 {
		assets := table.NewWriter()
		assets.SetStyle(table.StyleRounded)
		assets.AppendHeader(table.Row{"Domain", "Status", "Address", "ASN", "Netblock"})
		for _, info := range hierarchy.DigitalAssets.Domains {
			assets.AppendRow(table.Row{
				info.Domain,
				liveness(info.Active),
				info.IPAddress,
				info.ASN,
				info.Netblock,
			})
		}
		sb.WriteString("\n")
		sb.WriteString(assets.Render())
	}

	findings := table.NewWriter()
	findings.SetStyle(table.StyleRounded)
	findings.AppendHeader(table.Row{"Validation", "Status", "Score", "Recommendations"})
	for _, finding := range result.Findings {
		findings.AppendRow(table.Row{
			string(finding.Type),
			statusLabel(finding.Status),
			fmt.Sprintf("%d/100", finding.Score),
			strings.Join(finding.Recommendations, "; "),
		})
	}
	findings.AppendFooter(table.Row{
		"overall",
		verdict(result),
		fmt.Sprintf("%.1f/100", result.OverallScore),
		"",
	})
	sb.WriteString("\n")
	sb.WriteString(findings.Render())

	return sb.String(), nil
}
