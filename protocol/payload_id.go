package protocol

import "github.com/pkg/errors"

func (s *IdPayload) Type() PayloadType {
	return s.IdPayloadType
}

func (s *IdPayload) Encode() (b []byte) {
	b = []byte{uint8(s.IdType), 0, 0, 0}
	return append(b, s.Data...)
}

func (s *IdPayload) Decode(b []byte) error {
	if len(b) < 4 {
		return errors.Wrapf(ErrInvalidSyntax, "id too small %d < %d", len(b), 4)
	}
	// Header has already been decoded
	s.IdType = IdType(b[0])
	s.Data = copyBytes(b[4:])
	return nil
}
