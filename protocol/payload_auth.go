package protocol

import "github.com/pkg/errors"

func (s *AuthPayload) Type() PayloadType {
	return PayloadTypeAUTH
}

func (s *AuthPayload) Encode() (b []byte) {
	b = []byte{uint8(s.AuthMethod), 0, 0, 0}
	return append(b, s.Data...)
}

func (s *AuthPayload) Decode(b []byte) (err error) {
	if len(b) < 4 {
		return errors.Wrapf(ErrInvalidSyntax, "auth too small %d < %d", len(b), 4)
	}
	// Header has already been decoded
	s.AuthMethod = AuthMethod(b[0])
	s.Data = copyBytes(b[4:])
	return
}
