// Package enrich resolves domains and derives coarse network identity for
// the preparation pipeline.
package enrich

import (
	"context"
	"net"
	"strings"
	"time"
)

// discoverySuffixes are the top-level suffixes probed during batch discovery.
var discoverySuffixes = []string{"com", "org", "net", "io", "co"}

// Resolver is the name-resolution dependency of an Enricher. net.Resolver
// satisfies it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Enricher turns domain names into DomainInfo records. Resolution failure is
// encoded in the Active flag, never returned as an error; a single failed
// lookup counts as "not live" for that attempt.
type Enricher struct {
	Resolver Resolver
	Identity NetworkIdentityResolver
	Timeout  time.Duration
}

// DomainInfo mirrors core.DomainInfo. It is declared locally so the leaf
// package has no dependency on the pipeline types.
type DomainInfo struct {
	Domain    string
	Active    bool
	IPAddress string
	ASN       string
	Netblock  string
}

// Enrich resolves a domain and derives its placeholder network identifiers.
func (e *Enricher) Enrich(ctx context.Context, domain string) DomainInfo {
	info := DomainInfo{Domain: domain}

	name := strings.ToLower(strings.TrimSpace(domain))
	if name == "" {
		return info
	}
	info.Domain = name

	if ctx == nil {
		ctx = context.Background()
	}
	if e != nil && e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	addrs, err := e.resolver().LookupHost(ctx, name)
	if err != nil || len(addrs) == 0 {
		return info
	}

	info.Active = true
	info.IPAddress = primaryAddress(addrs)

	if ip := net.ParseIP(info.IPAddress); ip != nil {
		identity := e.identity()
		info.ASN = identity.ASN(ip)
		info.Netblock = identity.Netblock(ip)
	}

	return info
}

// Discover forms candidate domains from a search term and returns the ones
// that resolve. Terms that cannot form a valid hostname label are skipped.
func (e *Enricher) Discover(ctx context.Context, term string) []DomainInfo {
	label := strings.ToLower(strings.TrimSpace(term))
	if !validLabel(label) {
		return nil
	}

	live := make([]DomainInfo, 0, len(discoverySuffixes))
	for _, suffix := range discoverySuffixes {
		info := e.Enrich(ctx, label+"."+suffix)
		if info.Active {
			live = append(live, info)
		}
	}
	return live
}

func (e *Enricher) resolver() Resolver {
	if e != nil && e.Resolver != nil {
		return e.Resolver
	}
	return net.DefaultResolver
}

func (e *Enricher) identity() NetworkIdentityResolver {
	if e != nil && e.Identity != nil {
		return e.Identity
	}
	return PlaceholderIdentity{}
}

// primaryAddress prefers the first IPv4 address, matching the single-address
// behavior of classic gethostbyname lookups.
func primaryAddress(addrs []string) string {
	for _, addr := range addrs {
		if ip := net.ParseIP(addr); ip != nil && ip.To4() != nil {
			return addr
		}
	}
	return addrs[0]
}

// validLabel reports whether a term can be the leftmost label of a hostname.
func validLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
		return false
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}
