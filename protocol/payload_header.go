package protocol

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const criticalBit = 0x80

func (h *PayloadHeader) NextPayloadType() PayloadType {
	return h.NextPayload
}

func (h *PayloadHeader) Header() *PayloadHeader {
	return h
}

func (h PayloadHeader) Encode() (b []byte) {
	b = make([]byte, PAYLOAD_HEADER_LENGTH)
	b[0] = uint8(h.NextPayload)
	if h.IsCritical {
		b[1] = criticalBit
	}
	binary.BigEndian.PutUint16(b[2:], h.PayloadLength+PAYLOAD_HEADER_LENGTH)
	return
}

// Decode reads the generic header; PayloadLength is stored without the
// header's own 4 bytes, mirroring Encode.
func (h *PayloadHeader) Decode(b []byte) error {
	if len(b) < PAYLOAD_HEADER_LENGTH {
		return errors.Wrapf(ErrInvalidSyntax, "payload header too short: %d", len(b))
	}
	h.NextPayload = PayloadType(b[0])
	h.IsCritical = b[1]&criticalBit != 0
	total := binary.BigEndian.Uint16(b[2:])
	if total < PAYLOAD_HEADER_LENGTH {
		return errors.Wrapf(ErrInvalidSyntax, "payload length too small: %d", total)
	}
	h.PayloadLength = total - PAYLOAD_HEADER_LENGTH
	return nil
}
