package protocol

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

func (s *KePayload) Type() PayloadType { return PayloadTypeKE }

func (s *KePayload) Encode() (b []byte) {
	b = make([]byte, 4)
	binary.BigEndian.PutUint16(b, uint16(s.DhTransformId))
	return append(b, s.KeyData...)
}

func (s *KePayload) Decode(b []byte) (err error) {
	// Header has already been decoded
	if len(b) < 4 {
		return errors.Wrapf(ErrInvalidSyntax, "KE too small %d < 4", len(b))
	}
	s.DhTransformId = DhTransformId(binary.BigEndian.Uint16(b))
	s.KeyData = copyBytes(b[4:])
	return
}
