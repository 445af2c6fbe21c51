package rpcauth

import (
	"net"

	"golang.org/x/time/rate"

	"github.com/yndnr/endpointauth-go/pkg/cmap"
)

// PeerLimiter throttles peers that keep presenting bad tokens. Only
// rejections spend tokens, so well-behaved peers are never limited.
type PeerLimiter struct {
	perSecond int
	limiters  *cmap.Map[string, *rate.Limiter]
}

// NewPeerLimiter allows perSecond rejections per peer with an equal
// burst. It returns nil when perSecond is not positive; a nil
// PeerLimiter never limits.
func NewPeerLimiter(perSecond int) *PeerLimiter {
	if perSecond <= 0 {
		return nil
	}
	return &PeerLimiter{
		perSecond: perSecond,
		limiters:  cmap.New[string, *rate.Limiter](),
	}
}

// Limited reports whether peer has exhausted its rejection budget.
func (p *PeerLimiter) Limited(peer string) bool {
	if p == nil {
		return false
	}
	lim, ok := p.limiters.Get(peerHost(peer))
	return ok && lim.Tokens() < 1
}

// Reject spends one token of peer's rejection budget.
func (p *PeerLimiter) Reject(peer string) {
	if p == nil {
		return
	}
	lim, _ := p.limiters.GetOrSet(peerHost(peer), rate.NewLimiter(rate.Limit(p.perSecond), p.perSecond))
	lim.Allow()
}

// Prune drops peers whose budget has fully refilled. It returns the
// number of peers still tracked.
func (p *PeerLimiter) Prune() int {
	if p == nil {
		return 0
	}
	for _, peer := range p.limiters.Keys() {
		if lim, ok := p.limiters.Get(peer); ok && lim.Tokens() >= float64(p.perSecond) {
			p.limiters.Delete(peer)
		}
	}
	return p.limiters.Count()
}

// peerHost strips the port so one host maps to one budget.
func peerHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
