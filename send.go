package ike

import (
	"net"

	"github.com/go-kit/kit/log/level"
	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

// send encodes msg and writes it once. Nothing is retried here; callers
// that asked for a retransmittable message keep the returned bytes.
func (e *Engine) send(msg *Message, retransmittable bool) ([]byte, error) {
	b, err := msg.Encode()
	if err != nil {
		return nil, err
	}
	if err := e.transport.WritePacket(b, msg.RemoteAddr); err != nil {
		return nil, errors.Wrapf(err, "write to %v", msg.RemoteAddr)
	}
	kind := sendKind(msg, retransmittable)
	e.metrics.sent(kind)
	level.Debug(e.logger).Log("msg", "sent", "kind", kind,
		"exchange", msg.IkeHeader.ExchangeType, "flags", msg.IkeHeader.Flags,
		"payloads", msg.Payloads, "len", len(b), "to", msg.RemoteAddr,
		"header", dump{msg.IkeHeader})
	return b, nil
}

// resend writes retained bytes verbatim.
func (e *Engine) resend(b []byte, to net.Addr, kind string) error {
	if err := e.transport.WritePacket(b, to); err != nil {
		return errors.Wrapf(err, "write to %v", to)
	}
	e.metrics.sent(kind)
	level.Debug(e.logger).Log("msg", "sent", "kind", kind, "len", len(b), "to", to)
	return nil
}

func sendKind(msg *Message, retransmittable bool) string {
	switch {
	case retransmittable:
		return "request"
	case msg.Payloads.Get(protocol.PayloadTypeSA) == nil:
		return "notify"
	default:
		return "response"
	}
}
