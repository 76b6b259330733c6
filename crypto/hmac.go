package crypto

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

// integrityTransform returns the length of the truncated mac and of the key,
// which for hmac is the output size of the hash (rfc 4868)
func integrityTransform(trfId uint16) (macLen, keyLen int, err error) {
	switch id := protocol.AuthTransformId(trfId); id {
	case protocol.AUTH_HMAC_SHA2_512_256:
		return 32, sha512.Size, nil
	case protocol.AUTH_HMAC_SHA2_384_192:
		return 24, sha512.Size384, nil
	case protocol.AUTH_HMAC_SHA2_256_128:
		return 16, sha256.Size, nil
	case protocol.AUTH_HMAC_SHA1_96:
		return 12, sha1.Size, nil
	default:
		return 0, 0, errors.Wrapf(ErrUnsupportedTransform, "integrity %s", id)
	}
}
