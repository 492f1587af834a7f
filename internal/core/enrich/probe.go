package enrich

import "context"

// AssetProbe is the digital-asset sweep extension point. Implementations may
// consult external discovery services for domains or ASN allocations tied to
// a search term. Both methods may return nothing; the sweep treats empty
// results as "no additional assets", never as an error.
type AssetProbe interface {
	ProbeDomains(ctx context.Context, term string) ([]string, error)
	ProbeASNs(ctx context.Context, term string) ([]string, error)
}

// NoopProbe is the default AssetProbe. It finds nothing.
type NoopProbe struct{}

// ProbeDomains returns no candidate domains.
func (NoopProbe) ProbeDomains(ctx context.Context, term string) ([]string, error) {
	return nil, nil
}

// ProbeASNs returns no ASN candidates.
func (NoopProbe) ProbeASNs(ctx context.Context, term string) ([]string, error) {
	return nil, nil
}
