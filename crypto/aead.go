package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"io"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

/*
rfc5282
Using Authenticated Encryption Algorithms with the Encrypted Payload
        of the Internet Key Exchange version 2 (IKEv2) Protocol

sk payload ->
                        1                   2                   3
    0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   ! Next Payload  !C!  RESERVED   !         Payload Length        !
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   !                     Initialization Vector                     !
   !                              8B                               !
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
   ~                        Ciphertext (C)                         ~
   +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+

A (additional data) is the IKE header and the SK payload header.

length of SK_ai and SK_ar is 0
SK_ei and SK_er include salt bytes
*/

var ErrDecrypt = errors.New("message authentication failed")

type aeadFunc func(key []byte) (cipher.AEAD, error)

type aeadCipher struct {
	aeadFunc
	blockLen, keyLen, saltLen, ivLen, icvLen int

	protocol.EncrTransformId
}

const aadLen = protocol.IKE_HEADER_LEN + protocol.PAYLOAD_HEADER_LENGTH

func (cs *aeadCipher) split(skE []byte) (cipher.AEAD, []byte, error) {
	if len(skE) != cs.keyLen+cs.saltLen {
		return nil, nil, errors.Errorf("Invalid key of length %d, expected %d", len(skE), cs.keyLen+cs.saltLen)
	}
	// Encryption key has salt appended to it
	aead, err := cs.aeadFunc(skE[:cs.keyLen])
	return aead, skE[cs.keyLen:], err
}

func (cs *aeadCipher) overhead(clear []byte) int {
	// padding + iv + icv
	padlen := cs.blockLen - len(clear)%cs.blockLen
	return padlen + cs.ivLen + cs.icvLen
}

func (cs *aeadCipher) open(ike, skE []byte) (dec []byte, err error) {
	aead, salt, err := cs.split(skE)
	if err != nil {
		return
	}
	if len(ike) < aadLen+cs.ivLen+cs.icvLen {
		return nil, errors.Wrapf(ErrDecrypt, "encrypted message too short: %d", len(ike))
	}
	aad := ike[:aadLen]
	iv := ike[aadLen : aadLen+cs.ivLen]
	ct := ike[aadLen+cs.ivLen:]
	nonce := append(append([]byte{}, salt...), iv...) // 12B; 4B salt + 8B iv
	clear, err := aead.Open(nil, nonce, ct, aad)
	if err != nil {
		return nil, errors.Wrap(ErrDecrypt, err.Error())
	}
	if len(clear) == 0 {
		return nil, errors.Wrap(ErrDecrypt, "no pad length")
	}
	// remove pad
	padlen := int(clear[len(clear)-1]) + 1 // padlen byte itself
	if padlen > len(clear) {
		return nil, errors.Wrap(ErrDecrypt, "pad length is larger than clear text")
	}
	return clear[:len(clear)-padlen], nil
}

func (cs *aeadCipher) seal(headers, payload, skE []byte) (b []byte, err error) {
	aead, salt, err := cs.split(skE)
	if err != nil {
		return
	}
	iv := make([]byte, cs.ivLen)
	if _, err = io.ReadFull(rand.Reader, iv); err != nil {
		return
	}
	nonce := append(append([]byte{}, salt...), iv...)
	// pad, last byte is the pad length
	padlen := cs.blockLen - len(payload)%cs.blockLen
	clear := append(append([]byte{}, payload...), make([]byte, padlen)...)
	clear[len(clear)-1] = byte(padlen - 1)
	encr := aead.Seal(nil, nonce, clear, headers[:aadLen])
	b = append(append(append([]byte{}, headers[:aadLen]...), iv...), encr...)
	return
}

// NewCipher builds the AEAD for one direction from SK_e. Only combined mode
// suites have one.
func (cs *CipherSuite) NewCipher(skE []byte) (aead cipher.AEAD, salt []byte, err error) {
	if cs.aead == nil {
		return nil, nil, errors.Wrapf(ErrUnsupportedTransform, "%s is not a combined mode cipher", cs.EncrTransformId)
	}
	return cs.aead.split(skE)
}

// Overhead is how much an SK payload grows over its clear text.
func (cs *CipherSuite) Overhead(clear []byte) int {
	if cs.aead == nil {
		return 0
	}
	return cs.aead.overhead(clear)
}

// Open authenticates and decrypts a message whose first payload is SK,
// returning the inner payloads.
func (cs *CipherSuite) Open(ike, skE []byte) ([]byte, error) {
	if cs.aead == nil {
		return nil, errors.Wrapf(ErrUnsupportedTransform, "%s is not a combined mode cipher", cs.EncrTransformId)
	}
	return cs.aead.open(ike, skE)
}

// Seal encrypts payload under skE. headers is the IKE header followed by the
// SK payload header, both with lengths already covering the result.
func (cs *CipherSuite) Seal(headers, payload, skE []byte) ([]byte, error) {
	if cs.aead == nil {
		return nil, errors.Wrapf(ErrUnsupportedTransform, "%s is not a combined mode cipher", cs.EncrTransformId)
	}
	if len(headers) < aadLen {
		return nil, errors.Errorf("headers too short: %d", len(headers))
	}
	return cs.aead.seal(headers, payload, skE)
}
