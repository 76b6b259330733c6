package protocol

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

func (s *NotifyPayload) Type() PayloadType {
	return PayloadTypeN
}

func (s *NotifyPayload) Encode() (b []byte) {
	b = []byte{uint8(s.ProtocolId), uint8(len(s.Spi)), 0, 0}
	binary.BigEndian.PutUint16(b[2:], uint16(s.NotificationType))
	b = append(b, s.Spi...)
	b = append(b, s.Data...)
	return
}

func (s *NotifyPayload) Decode(b []byte) (err error) {
	if len(b) < 4 {
		return errors.Wrapf(ErrInvalidSyntax, "notify too small %d < 4", len(b))
	}
	s.ProtocolId = ProtocolId(b[0])
	spiLen := int(b[1])
	if len(b) < 4+spiLen {
		return errors.Wrapf(ErrInvalidSyntax, "notify spi size %d exceeds payload", spiLen)
	}
	s.NotificationType = NotificationType(binary.BigEndian.Uint16(b[2:]))
	s.Spi = copyBytes(b[4 : 4+spiLen])
	s.Data = copyBytes(b[4+spiLen:])
	return
}

// DhGroup returns the group carried by an INVALID_KE_PAYLOAD notification.
func (s *NotifyPayload) DhGroup() (DhTransformId, error) {
	if s.NotificationType != INVALID_KE_PAYLOAD || len(s.Data) != 2 {
		return 0, errors.Wrap(ErrInvalidSyntax, "not an INVALID_KE_PAYLOAD notification")
	}
	return DhTransformId(binary.BigEndian.Uint16(s.Data)), nil
}

// InvalidKeData is the body of an INVALID_KE_PAYLOAD notification.
func InvalidKeData(group DhTransformId) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(group))
	return b
}
