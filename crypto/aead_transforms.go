package crypto

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

func init() {
	IkeSuites["aes128gcm16-prfsha256-ecp256"] = protocol.IkeTransform(
		protocol.AEAD_AES_GCM_16,
		128,
		protocol.AUTH_NONE,
		protocol.PRF_HMAC_SHA2_256,
		protocol.ECP_256)
	IkeSuites["aes256gcm16-prfsha384-ecp384"] = protocol.IkeTransform(
		protocol.AEAD_AES_GCM_16,
		256,
		protocol.AUTH_NONE,
		protocol.PRF_HMAC_SHA2_384,
		protocol.ECP_384)
	IkeSuites["aes256gcm16-prfsha256-modp2048"] = protocol.IkeTransform(
		protocol.AEAD_AES_GCM_16,
		256,
		protocol.AUTH_NONE,
		protocol.PRF_HMAC_SHA2_256,
		protocol.MODP_2048)
	// rfc 7634: no key length attribute
	IkeSuites["chacha20poly1305-prfsha256-x25519"] = protocol.IkeTransform(
		protocol.AEAD_CHACHA20_POLY1305,
		0,
		protocol.AUTH_NONE,
		protocol.PRF_HMAC_SHA2_256,
		protocol.CURVE25519)
}

func aeadTransform(cipherID uint16, keyLen int) (*aeadCipher, error) {
	id := protocol.EncrTransformId(cipherID)
	switch id {
	case protocol.AEAD_AES_GCM_16:
		// rfc5282
		// AEAD_AES_128_GCM  & AEAD_AES_256_GCM with 16 octet ICV are supproted
		// go aead implementation assumes 16 octed atag by default
		if (keyLen != 16) && (keyLen != 32) {
			return nil, errors.Errorf("Invalid Key length: %d for transfom %s", keyLen, id.String())
		}
		ae := &aeadCipher{
			aeadFunc: func(key []byte) (cipher.AEAD, error) {
				block, err := aes.NewCipher(key)
				if err != nil {
					return nil, err
				}
				return cipher.NewGCM(block)
			},
			blockLen:        16,
			keyLen:          keyLen,
			saltLen:         4,  // 4 octets always
			ivLen:           8,  // 3.1 The Initialization Vector (IV) MUST be eight octets.
			icvLen:          16, // overhead
			EncrTransformId: id,
		}
		return ae, nil
	case protocol.AEAD_CHACHA20_POLY1305:
		// rfc7634
		if keyLen != 0 && keyLen != chacha20poly1305.KeySize {
			return nil, errors.Errorf("Invalid Key length: %d for transfom %s", keyLen, id.String())
		}
		ae := &aeadCipher{
			aeadFunc:        chacha20poly1305.New,
			blockLen:        4,                        // it may require padding octets so as to align the buffer to an integral multiple of 4 octets.
			keyLen:          chacha20poly1305.KeySize, // The encryption key is 256 bits
			saltLen:         4,                        // A 32-bit Salt
			ivLen:           8,                        // The Initialization Vector (IV) is 64 bits
			icvLen:          chacha20poly1305.Overhead,
			EncrTransformId: id,
		}
		return ae, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedTransform, "aead %s", id)
}
