// Package collect fetches encyclopedia-style organization profiles and
// scrapes them into raw company records. It is a deliberately crude
// text-extraction wrapper; the pipelines downstream do the real work.
package collect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/orglens/orglens/internal/core"
)

// DefaultBaseURL is the MediaWiki API endpoint used when none is configured.
const DefaultBaseURL = "https://en.wikipedia.org/w/api.php"

// Outcome classifies a page lookup.
type Outcome string

const (
	OutcomeFound          Outcome = "found"
	OutcomeDisambiguation Outcome = "disambiguation"
	OutcomeNotFound       Outcome = "not_found"
)

// PageResult is the collector's result type. Disambiguation and missing
// pages are outcomes, not errors; only transport or decode failures surface
// as errors.
type PageResult struct {
	Outcome    Outcome
	Record     core.CompanyRecord
	Candidates []string
	SourceURL  string
}

// Collector retrieves organization profiles from a MediaWiki API.
type Collector struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string

	// Delay is the politeness pause inserted between batch lookups.
	Delay  time.Duration
	Logger *zap.Logger
}

var (
	urlDomainPattern  = regexp.MustCompile(`https?://([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	bareDomainPattern = regexp.MustCompile(`([a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)*\.[a-zA-Z]{2,})`)
)

type apiResponse struct {
	Query struct {
		Pages map[string]apiPage `json:"pages"`
	} `json:"query"`
}

type apiPage struct {
	PageID    int    `json:"pageid"`
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	PageProps struct {
		Disambiguation *string `json:"disambiguation"`
	} `json:"pageprops"`
	Links []struct {
		Title string `json:"title"`
	} `json:"links"`
	ExtLinks []map[string]string `json:"extlinks"`
}

// Collect fetches and scrapes the profile page for a company name.
func (c *Collector) Collect(ctx context.Context, companyName string) (*PageResult, error) {
	name := strings.TrimSpace(companyName)
	if name == "" {
		return nil, errors.New("company name is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	logger := c.logger()
	logger.Info("collecting company profile", zap.String("company", name))

	page, pageURL, err := c.fetchPage(ctx, name)
	if err != nil {
		return nil, err
	}

	if page == nil || page.PageID == 0 {
		logger.Warn("page not found", zap.String("company", name))
		return &PageResult{
			Outcome:   OutcomeNotFound,
			Record:    core.CompanyRecord{Name: name},
			SourceURL: pageURL,
		}, nil
	}

	if page.PageProps.Disambiguation != nil {
		candidates := make([]string, 0, len(page.Links))
		for _, link := range page.Links {
			candidates = append(candidates, link.Title)
		}
		logger.Warn("page is a disambiguation",
			zap.String("company", name),
			zap.Int("candidates", len(candidates)),
		)
		return &PageResult{
			Outcome:    OutcomeDisambiguation,
			Record:     core.CompanyRecord{Name: name},
			Candidates: candidates,
			SourceURL:  pageURL,
		}, nil
	}

	record := core.CompanyRecord{Name: name}
	parseExtract(page.Extract, &record)
	harvestExternalLinks(page.ExtLinks, &record)

	logger.Info("collected company profile",
		zap.String("company", name),
		zap.Int("domains", len(record.Domains)),
		zap.Int("brands", len(record.Brands)),
	)
	return &PageResult{
		Outcome:   OutcomeFound,
		Record:    record,
		SourceURL: pageURL,
	}, nil
}

// CollectAll fetches profiles for multiple companies, pausing between
// lookups. A failed lookup yields a NotFound result for that name so one
// flaky page never aborts the batch.
func (c *Collector) CollectAll(ctx context.Context, names []string) []*PageResult {
	results := make([]*PageResult, 0, len(names))
	for i, name := range names {
		if i > 0 && c != nil && c.Delay > 0 {
			select {
			case <-time.After(c.Delay):
			case <-ctx.Done():
				return results
			}
		}

		result, err := c.Collect(ctx, name)
		if err != nil {
			c.logger().Error("collection failed", zap.String("company", name), zap.Error(err))
			result = &PageResult{
				Outcome: OutcomeNotFound,
				Record:  core.CompanyRecord{Name: strings.TrimSpace(name)},
			}
		}
		results = append(results, result)
	}
	return results
}

func (c *Collector) fetchPage(ctx context.Context, title string) (*apiPage, string, error) {
	base := DefaultBaseURL
	if c != nil && strings.TrimSpace(c.BaseURL) != "" {
		base = c.BaseURL
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("redirects", "1")
	params.Set("prop", "extracts|pageprops|links|extlinks")
	params.Set("explaintext", "1")
	params.Set("pllimit", "50")
	params.Set("ellimit", "50")
	params.Set("titles", title)

	requestURL := base + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, requestURL, fmt.Errorf("build page request: %w", err)
	}
	if c != nil && c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := http.DefaultClient
	if c != nil && c.HTTPClient != nil {
		client = c.HTTPClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, requestURL, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	if resp.StatusCode != http.StatusOK {
		return nil, requestURL, fmt.Errorf("fetch page: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, requestURL, fmt.Errorf("read page response: %w", err)
	}

	var decoded apiResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, requestURL, fmt.Errorf("decode page response: %w", err)
	}

	for id, page := range decoded.Query.Pages {
		if id == "-1" || page.PageID == 0 {
			return nil, requestURL, nil
		}
		return &page, requestURL, nil
	}
	return nil, requestURL, nil
}

// parseExtract runs the line-oriented field scrape over the plaintext
// article body.
func parseExtract(extract string, record *core.CompanyRecord) {
	for _, raw := range strings.Split(extract, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if record.LegalName == "" && (strings.Contains(lower, "legal name") || strings.Contains(lower, "incorporated as")) {
			record.LegalName = extractValue(line)
		}
		if record.ColloquialName == "" && (strings.Contains(lower, "commonly known as") || strings.Contains(lower, "colloquially")) {
			record.ColloquialName = extractValue(line)
		}
		if strings.Contains(lower, "website") || strings.Contains(lower, "domain") {
			if domain := extractDomain(line); domain != "" && !containsString(record.Domains, domain) {
				record.Domains = append(record.Domains, domain)
			}
		}
		if strings.Contains(lower, "acquired") || strings.Contains(lower, "acquisition") {
			if value := extractValue(line); value != "" {
				record.Acquisitions = append(record.Acquisitions, core.Acquisition{AcquiredCompany: value})
			}
		}
		if strings.Contains(lower, "brand") || strings.Contains(lower, "product") {
			if value := extractValue(line); value != "" && !containsString(record.Brands, value) {
				record.Brands = append(record.Brands, value)
			}
		}
		if strings.Contains(lower, "subsidiary") || strings.Contains(lower, "subsidiaries") {
			if value := extractValue(line); value != "" && !containsString(record.Subsidiaries, value) {
				record.Subsidiaries = append(record.Subsidiaries, value)
			}
		}
	}
}

// harvestExternalLinks pulls plausible organization domains out of the
// article's external links.
func harvestExternalLinks(links []map[string]string, record *core.CompanyRecord) {
	for _, link := range links {
		target := link["*"]
		if target == "" {
			continue
		}
		domain := extractDomain(target)
		if domain == "" || strings.Contains(strings.ToLower(domain), "wikipedia") {
			continue
		}
		if !hasKnownSuffix(domain) {
			continue
		}
		if !containsString(record.Domains, domain) {
			record.Domains = append(record.Domains, domain)
		}
	}
}

// extractValue pulls the text after the first colon, stripped of wiki
// markup leftovers.
func extractValue(line string) string {
	_, after, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	value := strings.ReplaceAll(after, "[[", "")
	value = strings.ReplaceAll(value, "]]", "")
	value, _, _ = strings.Cut(value, "|")
	return strings.TrimSpace(value)
}

func extractDomain(line string) string {
	if match := urlDomainPattern.FindStringSubmatch(line); len(match) > 1 {
		return strings.ToLower(match[1])
	}
	if match := bareDomainPattern.FindStringSubmatch(line); len(match) > 1 {
		candidate := strings.ToLower(match[1])
		if !strings.Contains(candidate, "wikipedia") {
			return candidate
		}
	}
	return ""
}

func hasKnownSuffix(domain string) bool {
	for _, suffix := range []string{".com", ".org", ".net", ".io", ".co"} {
		if strings.HasSuffix(domain, suffix) {
			return true
		}
	}
	return false
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func (c *Collector) logger() *zap.Logger {
	if c != nil && c.Logger != nil {
		return c.Logger
	}
	return zap.NewNop()
}
