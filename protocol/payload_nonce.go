package protocol

import "github.com/pkg/errors"

func (s *NoncePayload) Type() PayloadType {
	return PayloadTypeNonce
}

func (s *NoncePayload) Encode() (b []byte) {
	return s.Nonce
}

func (s *NoncePayload) Decode(b []byte) error {
	// Header has already been decoded
	// between 16 and 256 octets
	if len(b) < MIN_LEN_NONCE || len(b) > MAX_LEN_NONCE {
		return errors.Wrapf(ErrInvalidSyntax, "NONCE length invalid: %d", len(b))
	}
	s.Nonce = copyBytes(b)
	return nil
}
