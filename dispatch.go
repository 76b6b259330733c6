package ike

import (
	"net"

	"github.com/go-kit/kit/log/level"
	"github.com/msgboxio/ikecore/protocol"
	"github.com/msgboxio/ikecore/state"
	"github.com/pkg/errors"
)

type route int

const (
	routeDrop route = iota
	routeInitRequest
	routeInitResponse
	routePostInit
)

func (r route) String() string {
	switch r {
	case routeDrop:
		return "drop"
	case routeInitRequest:
		return "init_request"
	case routeInitResponse:
		return "init_response"
	case routePostInit:
		return "post_init"
	default:
		return "unknown"
	}
}

// reasons a datagram is dropped without an answer
var (
	errUnroutable      = errors.New("no route for message")
	errOrphan          = errors.New("no context for message")
	errCookieSent      = errors.New("cookie required")
	errNotWaiting      = errors.New("context is not waiting for a response")
	errNotEstablished  = errors.New("context is not established")
	errRequestMismatch = errors.New("request differs from the one answered")
)

func classify(hdr *protocol.IkeHeader) route {
	if hdr.MajorVersion != protocol.IKEV2_MAJOR_VERSION {
		return routeDrop
	}
	switch hdr.ExchangeType {
	case protocol.IKE_SA_INIT:
		if hdr.MsgID != 0 {
			return routeDrop
		}
		if hdr.Flags.IsResponse() {
			return routeInitResponse
		}
		if hdr.SpiR.IsZero() {
			return routeInitRequest
		}
		return routeDrop
	case protocol.IKE_AUTH, protocol.CREATE_CHILD_SA, protocol.INFORMATIONAL:
		return routePostInit
	default:
		return routeDrop
	}
}

// Dispatch routes one datagram. b must not be modified afterwards; the
// responder keeps it to recognise duplicates. Errors are counted and logged,
// never returned.
func (e *Engine) Dispatch(b []byte, remote, local net.Addr) {
	if e.isClosed() {
		return
	}
	hdr, err := protocol.DecodeIkeHeader(b)
	if err == nil && int(hdr.MsgLength) != len(b) {
		err = errors.Wrapf(protocol.ErrLengthMismatch, "header says %d, datagram has %d", hdr.MsgLength, len(b))
	}
	if err != nil {
		e.dropped(routeDrop, remote, err)
		return
	}
	r := classify(hdr)
	switch r {
	case routeDrop:
		err = errors.Wrapf(errUnroutable, "%s %s version %d", hdr.ExchangeType, hdr.Flags, hdr.MajorVersion)
	case routeInitRequest:
		var msg *Message
		if msg, err = decodeFrom(b, remote, local); err == nil {
			err = e.inboundInit(msg)
		}
	case routeInitResponse:
		sa, found := e.table.get(halfOpenKey(hdr.SpiI, addrKey(remote), Initiator))
		if !found {
			err = errors.Wrapf(errOrphan, "response for %x", []byte(hdr.SpiI))
			break
		}
		var msg *Message
		if msg, err = decodeFrom(b, remote, local); err == nil {
			err = sa.handleInitResponse(msg)
		}
	case routePostInit:
		// the original initiator sets the flag, so then we are the responder
		role := Initiator
		if hdr.Flags.IsInitiator() {
			role = Responder
		}
		sa, found := e.table.get(fullKey(hdr.SpiI, hdr.SpiR, role))
		if !found {
			err = errors.Wrapf(errOrphan, "%s for %x<=>%x", hdr.ExchangeType, []byte(hdr.SpiI), []byte(hdr.SpiR))
			break
		}
		err = sa.forward(hdr, b)
	}
	if err != nil {
		e.dropped(r, remote, err)
		return
	}
	e.metrics.datagram(r, "handled")
}

func decodeFrom(b []byte, remote, local net.Addr) (*Message, error) {
	msg, err := DecodeMessage(b)
	if err != nil {
		return nil, err
	}
	msg.RemoteAddr = remote
	msg.LocalAddr = local
	return msg, nil
}

func (e *Engine) dropped(r route, remote net.Addr, err error) {
	result := dropReason(err)
	e.metrics.datagram(r, result)
	level.Debug(e.logger).Log("msg", "dropped", "route", r, "reason", result, "from", remote, "err", err)
}

func dropReason(err error) string {
	if protocol.IsDecodeError(err) {
		return "malformed"
	}
	switch errors.Cause(err) {
	case ErrPolicyDenied:
		return "denied"
	case errUnroutable:
		return "unroutable"
	case errOrphan:
		return "orphan"
	case errCookieSent:
		return "cookie"
	case errNotWaiting, errNotEstablished:
		return "state"
	case errRequestMismatch:
		return "mismatch"
	case ErrInvalidResponse:
		return "invalid"
	default:
		return "error"
	}
}

func (sa *SA) forward(hdr *protocol.IkeHeader, b []byte) error {
	sa.mu.Lock()
	current := sa.state
	if current == state.Established {
		// the peer has moved past IKE_SA_INIT
		sa.releaseHalfOpen()
	}
	sa.mu.Unlock()
	if current != state.Established {
		return errors.Wrapf(errNotEstablished, "state %s", current)
	}
	sa.engine.cb.Forward(sa, hdr, b)
	return nil
}
