package enrich

import (
	"context"
	"strings"
	"time"

	"github.com/openrdap/rdap"
)

// RDAPProbe is an optional AssetProbe backed by RDAP registration data. It
// reports candidate domains that are registered for a term even when they do
// not currently resolve. Registration lookups are best-effort: any RDAP
// failure yields no candidates for that suffix.
type RDAPProbe struct {
	Client   *rdap.Client
	Suffixes []string
	Timeout  time.Duration
}

// ProbeDomains returns the registered candidate domains for a term.
func (p *RDAPProbe) ProbeDomains(ctx context.Context, term string) ([]string, error) {
	label := strings.ToLower(strings.TrimSpace(term))
	if !validLabel(label) {
		return nil, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	suffixes := p.Suffixes
	if len(suffixes) == 0 {
		suffixes = discoverySuffixes
	}

	client := p.Client
	if client == nil {
		client = &rdap.Client{}
	}

	registered := make([]string, 0, len(suffixes))
	for _, suffix := range suffixes {
		domain := label + "." + strings.TrimPrefix(suffix, ".")

		req := rdap.NewDomainRequest(domain)
		if p.Timeout > 0 {
			req.Timeout = p.Timeout
		}
		req = req.WithContext(ctx)

		resp, err := client.Do(req)
		if err != nil {
			continue
		}
		if _, ok := resp.Object.(*rdap.Domain); ok {
			registered = append(registered, domain)
		}
	}

	return registered, nil
}

// ProbeASNs returns no candidates; RDAP autnum search by name is not
// supported by public bootstrap servers.
func (p *RDAPProbe) ProbeASNs(ctx context.Context, term string) ([]string, error) {
	return nil, nil
}
