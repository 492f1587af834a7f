package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/orglens/orglens/internal/core"
)

func sampleResult() *core.ValidatedResult {
	return &core.ValidatedResult{
		OverallScore: 87.5,
		IsValid:      true,
		Findings: []core.ValidationFinding{
			{Type: core.ValidationTypeSource, Status: core.StatusPassed, Score: 90},
			{Type: core.ValidationTypeFinal, Status: core.StatusWarning, Score: 85, Recommendations: []string{"Complete company hierarchy information"}},
		},
		Hierarchy: &core.Hierarchy{
			Company: core.HierarchyCompany{
				Name:      "Acme",
				LegalName: "Acme Corporation",
			},
			Subsidiaries: []string{"Acme Labs"},
			Brands:       []string{"RoadRunner"},
			DigitalAssets: core.DigitalAssets{
				Domains: []core.DomainInfo{{
					Domain:    "acme.com",
					Active:    true,
					IPAddress: "203.0.113.10",
					ASN:       "AS64500",
					Netblock:  "203.0.113.0/24",
				}},
				ASNs:      []string{"AS64500"},
				Netblocks: []string{"203.0.113.0/24"},
			},
			SearchTerms: []string{"acme"},
			Validation:  core.ValidationSummary{OverallScore: 87.5},
		},
	}
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat(" JSON ")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("markdown")
	require.NoError(t, err)
	require.Equal(t, FormatMarkdown, format)

	_, err = ParseFormat("xml")
	require.Error(t, err)
}

func TestTableFormatter(t *testing.T) {
	rendered, err := (&TableFormatter{}).FormatResult(sampleResult())
	require.NoError(t, err)

	require.Contains(t, rendered, "Acme")
	require.Contains(t, rendered, "acme.com")
	require.Contains(t, rendered, "live")
	require.Contains(t, rendered, "AS64500")
	require.Contains(t, rendered, "PASSED")
	require.Contains(t, rendered, "87.5/100")
	require.Contains(t, rendered, "valid")
}

func TestTableFormatterNilResult(t *testing.T) {
	rendered, err := (&TableFormatter{}).FormatResult(nil)
	require.NoError(t, err)
	require.Empty(t, rendered)
}

func TestJSONFormatter(t *testing.T) {
	rendered, err := (&JSONFormatter{Indent: true}).FormatResult(sampleResult())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))
	require.Equal(t, 87.5, decoded["overall_score"])
	require.Equal(t, true, decoded["is_valid"])
	require.Contains(t, decoded, "final_hierarchy")
	require.Contains(t, decoded, "validation_results")
}

func TestMarkdownFormatter(t *testing.T) {
	rendered, err := (&MarkdownFormatter{}).FormatResult(sampleResult())
	require.NoError(t, err)

	require.Contains(t, rendered, "## Acme")
	require.Contains(t, rendered, "| acme.com | live | AS64500 | 203.0.113.0/24 |")
	require.Contains(t, rendered, "- **validation**: WARNING, 85/100")
	require.Contains(t, rendered, "  - Complete company hierarchy information")
}

func TestNewFormatter(t *testing.T) {
	require.IsType(t, &TableFormatter{}, NewFormatter(FormatTable))
	require.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	require.IsType(t, &MarkdownFormatter{}, NewFormatter(FormatMarkdown))
}
