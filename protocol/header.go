package protocol

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// DecodeIkeHeader decodes the fixed header. It only reads the first
// IKE_HEADER_LEN bytes; matching MsgLength against the datagram is left to
// the caller, which knows the datagram size.
func DecodeIkeHeader(b []byte) (h *IkeHeader, err error) {
	if len(b) < IKE_HEADER_LEN {
		return nil, errors.Wrapf(ErrMalformedHeader, "packet too short: %d", len(b))
	}
	h = &IkeHeader{}
	h.SpiI = append(Spi{}, b[:8]...)
	h.SpiR = append(Spi{}, b[8:16]...)
	h.NextPayload = PayloadType(b[16])
	ver := b[17]
	h.MajorVersion = ver >> 4
	h.MinorVersion = ver & 0x0f
	h.ExchangeType = IkeExchangeType(b[18])
	h.Flags = IkeFlags(b[19])
	h.MsgID = binary.BigEndian.Uint32(b[20:])
	h.MsgLength = binary.BigEndian.Uint32(b[24:])
	if h.MsgLength < IKE_HEADER_LEN {
		return nil, errors.Wrapf(ErrMalformedHeader, "declared length too small: %d", h.MsgLength)
	}
	return
}

func (h *IkeHeader) Encode() (b []byte) {
	b = make([]byte, IKE_HEADER_LEN)
	copy(b, h.SpiI)
	copy(b[8:], h.SpiR)
	b[16] = uint8(h.NextPayload)
	b[17] = h.MajorVersion<<4 | h.MinorVersion&0x0f
	b[18] = uint8(h.ExchangeType)
	b[19] = uint8(h.Flags)
	binary.BigEndian.PutUint32(b[20:], h.MsgID)
	binary.BigEndian.PutUint32(b[24:], h.MsgLength)
	return
}

// IsZero reports whether the spi is unset.
func (s Spi) IsZero() bool {
	for _, c := range s {
		if c != 0 {
			return false
		}
	}
	return true
}

// SpiToUint64 converts an 8 byte IKE SPI for use as a map key.
func SpiToUint64(spi Spi) uint64 {
	if len(spi) < 8 {
		var b [8]byte
		copy(b[8-len(spi):], spi)
		return binary.BigEndian.Uint64(b[:])
	}
	return binary.BigEndian.Uint64(spi)
}
