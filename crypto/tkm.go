package crypto

import (
	"crypto/rand"
	"io"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

// Tkm is the default key manager: it makes nonces and key exchange values
// and derives IKE SA keys. It keeps no per-SA state.
type Tkm struct {
	rand io.Reader
}

// NewTkm uses randSource for all randomness, crypto/rand when nil.
func NewTkm(randSource io.Reader) *Tkm {
	if randSource == nil {
		randSource = rand.Reader
	}
	return &Tkm{rand: randSource}
}

// Nonce returns length random bytes; IKE nonces are 16 to 256 bytes.
func (t *Tkm) Nonce(length int) ([]byte, error) {
	if length < protocol.MIN_LEN_NONCE || length > protocol.MAX_LEN_NONCE {
		return nil, errors.Errorf("nonce length %d out of range", length)
	}
	no := make([]byte, length)
	if _, err := io.ReadFull(t.rand, no); err != nil {
		return nil, errors.Wrap(err, "nonce")
	}
	return no, nil
}

func (t *Tkm) GenerateKeyPair(group protocol.DhTransformId) (public, private []byte, err error) {
	grp, err := getGroup(group)
	if err != nil {
		return
	}
	private, public, err = grp.Generate(t.rand)
	if err != nil {
		err = errors.Wrapf(err, "generate %s", group)
	}
	return
}

func (t *Tkm) SharedSecret(group protocol.DhTransformId, private, peerPublic []byte) ([]byte, error) {
	grp, err := getGroup(group)
	if err != nil {
		return nil, err
	}
	return grp.DiffieHellman(peerPublic, private)
}

func (t *Tkm) DeriveKeys(suite protocol.Transforms, secret, ni, nr []byte, spiI, spiR protocol.Spi) (*KeySet, error) {
	cs, err := NewCipherSuite(suite)
	if err != nil {
		return nil, err
	}
	return DeriveKeys(cs, secret, ni, nr, spiI, spiR)
}
