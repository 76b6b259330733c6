package ike

import (
	"net"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

var InitPayloads = []protocol.PayloadType{
	protocol.PayloadTypeSA,
	protocol.PayloadTypeKE,
	protocol.PayloadTypeNonce,
}

type Message struct {
	IkeHeader             *protocol.IkeHeader
	Payloads              *protocol.Payloads
	LocalAddr, RemoteAddr net.Addr

	Data []byte // the datagram the message was decoded from
}

// DecodeMessage decodes a complete datagram. The declared length must match
// the datagram exactly.
func DecodeMessage(b []byte) (msg *Message, err error) {
	msg = &Message{}
	if msg.IkeHeader, err = protocol.DecodeIkeHeader(b); err != nil {
		return nil, err
	}
	if int(msg.IkeHeader.MsgLength) != len(b) {
		return nil, errors.Wrapf(protocol.ErrLengthMismatch,
			"header says %d, datagram has %d", msg.IkeHeader.MsgLength, len(b))
	}
	if msg.Payloads, err = protocol.DecodePayloads(b[protocol.IKE_HEADER_LEN:], msg.IkeHeader.NextPayload); err != nil {
		return nil, err
	}
	msg.Data = b
	return
}

// Encode fills in the header's first payload and length. Encrypted messages
// are never built here.
func (msg *Message) Encode() (b []byte, err error) {
	if msg.IkeHeader == nil || msg.Payloads == nil {
		return nil, errors.New("incomplete message")
	}
	if msg.Payloads.Get(protocol.PayloadTypeSK) != nil {
		return nil, errors.New("cannot encode encrypted payloads")
	}
	b = protocol.EncodePayloads(msg.Payloads)
	msg.IkeHeader.NextPayload = msg.Payloads.FirstPayloadType()
	msg.IkeHeader.MsgLength = uint32(len(b) + protocol.IKE_HEADER_LEN)
	b = append(msg.IkeHeader.Encode(), b...)
	return
}

func (msg *Message) ensurePayloads(payloadTypes []protocol.PayloadType) bool {
	mp := msg.Payloads
	for _, pt := range payloadTypes {
		if mp.Get(pt) == nil {
			return false
		}
	}
	return true
}

func (msg *Message) EnsurePayloads(payloadTypes []protocol.PayloadType) error {
	if !msg.ensurePayloads(payloadTypes) {
		return errors.Wrapf(protocol.ErrInvalidSyntax, "essential payload is missing from %s message", msg.IkeHeader.ExchangeType)
	}
	return nil
}
