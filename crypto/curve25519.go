package crypto

import (
	"io"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
	"golang.org/x/crypto/curve25519"
)

func addCurve25519(kexAlgoMap map[protocol.DhTransformId]dhGroup) {
	kexAlgoMap[protocol.CURVE25519] = curve25519Group{}
}

// rfc 8031
type curve25519Group struct{}

func (curve25519Group) TransformId() protocol.DhTransformId {
	return protocol.CURVE25519
}

func (g curve25519Group) Generate(randSource io.Reader) (private, public []byte, err error) {
	private = make([]byte, curve25519.ScalarSize)
	if _, err = io.ReadFull(randSource, private); err != nil {
		return nil, nil, err
	}
	public, err = g.Public(private)
	return
}

func (curve25519Group) Public(private []byte) ([]byte, error) {
	if len(private) != curve25519.ScalarSize {
		return nil, errors.Wrapf(ErrKeyExchange, "curve25519 private value has %d bytes", len(private))
	}
	return curve25519.X25519(private, curve25519.Basepoint)
}

func (curve25519Group) DiffieHellman(theirPublic, myPrivate []byte) ([]byte, error) {
	if len(theirPublic) != curve25519.PointSize {
		return nil, errors.Wrapf(ErrKeyExchange, "curve25519 public value has %d bytes", len(theirPublic))
	}
	// fails on low order points, which would give an all zero secret
	secret, err := curve25519.X25519(myPrivate, theirPublic)
	if err != nil {
		return nil, errors.Wrap(ErrKeyExchange, err.Error())
	}
	return secret, nil
}
