package crypto

import (
	"crypto/aes"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

// IkeSuites are the named IKE transform sets that configuration can refer to.
var IkeSuites = make(map[string]protocol.Transforms)

type CipherSuite struct {
	Prf     *Prf
	DhGroup protocol.DhTransformId

	protocol.EncrTransformId
	protocol.AuthTransformId

	// Lengths, in bytes, of the key material needed for each component.
	// KeyLen includes the salt of combined mode ciphers.
	KeyLen, MacKeyLen int

	MacLen, BlockLen int

	aead *aeadCipher
}

// NewCipherSuite checks that every transform in trs can be used and works out
// the key lengths. Combined mode ciphers must come without an integrity transform.
func NewCipherSuite(trs protocol.Transforms) (*CipherSuite, error) {
	cs := &CipherSuite{}
	for _, tr := range trs.AsList() {
		switch tr.Transform.Type {
		case protocol.TRANSFORM_TYPE_DH:
			cs.DhGroup = protocol.DhTransformId(tr.Transform.TransformId)
			if _, err := getGroup(cs.DhGroup); err != nil {
				return nil, err
			}
		case protocol.TRANSFORM_TYPE_PRF:
			prf, err := prfTranform(tr.Transform.TransformId)
			if err != nil {
				return nil, err
			}
			cs.Prf = prf
		case protocol.TRANSFORM_TYPE_ENCR:
			cs.EncrTransformId = protocol.EncrTransformId(tr.Transform.TransformId)
			keyLen := int(tr.KeyLength) / 8 // from attribute; in bits
			if aead, err := aeadTransform(tr.Transform.TransformId, keyLen); err == nil {
				cs.aead = aead
				cs.KeyLen = aead.keyLen + aead.saltLen
				cs.BlockLen = aead.blockLen
				continue
			} else if errors.Cause(err) != ErrUnsupportedTransform {
				return nil, err
			}
			if err := cs.blockCipher(keyLen); err != nil {
				return nil, err
			}
		case protocol.TRANSFORM_TYPE_INTEG:
			cs.AuthTransformId = protocol.AuthTransformId(tr.Transform.TransformId)
			macLen, keyLen, err := integrityTransform(tr.Transform.TransformId)
			if err != nil {
				return nil, err
			}
			cs.MacLen, cs.MacKeyLen = macLen, keyLen
		default:
			return nil, errors.Wrapf(ErrUnsupportedTransform, "transform type %s in IKE suite", tr.Transform.Type)
		}
	}
	switch {
	case cs.Prf == nil:
		return nil, errors.Wrap(ErrUnsupportedTransform, "suite has no prf")
	case cs.DhGroup == protocol.MODP_NONE:
		return nil, errors.Wrap(ErrUnsupportedTransform, "suite has no dh group")
	case cs.KeyLen == 0 && cs.EncrTransformId != protocol.ENCR_NULL:
		return nil, errors.Wrap(ErrUnsupportedTransform, "suite has no cipher")
	case cs.aead != nil && cs.MacKeyLen != 0:
		return nil, errors.Wrap(ErrUnsupportedTransform, "combined mode cipher with integrity transform")
	case cs.aead == nil && cs.MacKeyLen == 0:
		return nil, errors.Wrap(ErrUnsupportedTransform, "suite has no integrity transform")
	}
	return cs, nil
}

func (cs *CipherSuite) blockCipher(keyLen int) error {
	switch cs.EncrTransformId {
	case protocol.ENCR_AES_CBC:
		if keyLen != 16 && keyLen != 24 && keyLen != 32 {
			return errors.Errorf("Invalid Key length: %d for transfom %s", keyLen, cs.EncrTransformId)
		}
		cs.KeyLen = keyLen
		cs.BlockLen = aes.BlockSize
	case protocol.ENCR_NULL:
		cs.KeyLen = 0
	default:
		return errors.Wrapf(ErrUnsupportedTransform, "cipher %s", cs.EncrTransformId)
	}
	return nil
}

// IsAead is true for combined mode ciphers, which use no SK_a keys.
func (cs *CipherSuite) IsAead() bool {
	return cs.aead != nil
}

func init() {
	IkeSuites["aes128-sha256-modp2048"] = protocol.IkeTransform(
		protocol.ENCR_AES_CBC,
		128,
		protocol.AUTH_HMAC_SHA2_256_128,
		protocol.PRF_HMAC_SHA2_256,
		protocol.MODP_2048)
	IkeSuites["aes256-sha384-ecp384"] = protocol.IkeTransform(
		protocol.ENCR_AES_CBC,
		256,
		protocol.AUTH_HMAC_SHA2_384_192,
		protocol.PRF_HMAC_SHA2_384,
		protocol.ECP_384)
	IkeSuites["aes128-sha1-modp1024"] = protocol.IkeTransform(
		protocol.ENCR_AES_CBC,
		128,
		protocol.AUTH_HMAC_SHA1_96,
		protocol.PRF_HMAC_SHA1,
		protocol.MODP_1024)
}
