package ike

import (
	"net"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

// Policy decides whether a peer may negotiate, and with which transforms,
// in order of preference.
type Policy interface {
	Lookup(remote net.Addr) ([]protocol.Transforms, error)
}

// StaticPolicy offers the same proposals to every peer inside Allowed.
// An empty Allowed list lets everyone in.
type StaticPolicy struct {
	Allowed   []*net.IPNet
	Proposals []protocol.Transforms
}

func (p *StaticPolicy) Lookup(remote net.Addr) ([]protocol.Transforms, error) {
	if len(p.Proposals) == 0 {
		return nil, errors.Wrap(ErrPolicyDenied, "no proposals configured")
	}
	if len(p.Allowed) == 0 {
		return p.Proposals, nil
	}
	ip := AddrToIp(remote)
	for _, n := range p.Allowed {
		if ip != nil && n.Contains(ip) {
			return p.Proposals, nil
		}
	}
	return nil, errors.Wrapf(ErrPolicyDenied, "%v", remote)
}

// ParseNetworks parses a list of CIDR strings.
func ParseNetworks(cidrs []string) (nets []*net.IPNet, err error) {
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			return nil, errors.Wrapf(err, "network %q", c)
		}
		nets = append(nets, n)
	}
	return
}
