package ike

import (
	"github.com/msgboxio/ikecore/protocol"
)

// Callback is how the engine reports to the owner of established SAs.
// Methods are never called with a context lock held.
type Callback interface {
	Established(*SA, *EstablishedSA)
	Failed(*SA, error)
	// Forward hands over a post IKE_SA_INIT datagram for an established SA,
	// undecrypted.
	Forward(*SA, *protocol.IkeHeader, []byte)
}

// Callbacks adapts functions to Callback; nil fields are ignored.
type Callbacks struct {
	OnEstablished func(*SA, *EstablishedSA)
	OnFailed      func(*SA, error)
	OnForward     func(*SA, *protocol.IkeHeader, []byte)
}

func (c *Callbacks) Established(sa *SA, est *EstablishedSA) {
	if c.OnEstablished != nil {
		c.OnEstablished(sa, est)
	}
}

func (c *Callbacks) Failed(sa *SA, err error) {
	if c.OnFailed != nil {
		c.OnFailed(sa, err)
	}
}

func (c *Callbacks) Forward(sa *SA, hdr *protocol.IkeHeader, b []byte) {
	if c.OnForward != nil {
		c.OnForward(sa, hdr, b)
	}
}
