package enrich

import (
	"fmt"
	"net"

	"github.com/cespare/xxhash/v2"
)

// NetworkIdentityResolver derives network-registration identifiers for a
// resolved address. The bundled implementation is a deterministic
// placeholder; substituting a real registry lookup service only requires a
// different implementation of this interface.
type NetworkIdentityResolver interface {
	ASN(ip net.IP) string
	Netblock(ip net.IP) string
}

// PlaceholderIdentity derives stable mock identifiers from the address
// itself. The values are not registry data and must not be treated as
// authoritative; they exist so downstream cross-referencing has something
// deterministic to chew on.
type PlaceholderIdentity struct{}

// ASN returns a stable pseudo ASN for the address.
func (PlaceholderIdentity) ASN(ip net.IP) string {
	if ip == nil {
		return ""
	}
	return fmt.Sprintf("AS%d", xxhash.Sum64String(ip.String())%100000)
}

// Netblock returns the canonical /24 (IPv4) or /48 (IPv6) network containing
// the address.
func (PlaceholderIdentity) Netblock(ip net.IP) string {
	if ip == nil {
		return ""
	}
	if v4 := ip.To4(); v4 != nil {
		return fmt.Sprintf("%s/24", v4.Mask(net.CIDRMask(24, 32)))
	}
	return fmt.Sprintf("%s/48", ip.Mask(net.CIDRMask(48, 128)))
}
