package crypto

import (
	"crypto/elliptic"
	"io"
	"math/big"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

func addEcpGroups(kexAlgoMap map[protocol.DhTransformId]dhGroup) {
	kexAlgoMap[protocol.ECP_224] = &ecpGroup{
		curve:         elliptic.P224(),
		DhTransformId: protocol.ECP_224,
	}
	kexAlgoMap[protocol.ECP_256] = &ecpGroup{
		curve:         elliptic.P256(),
		DhTransformId: protocol.ECP_256,
	}
	kexAlgoMap[protocol.ECP_384] = &ecpGroup{
		curve:         elliptic.P384(),
		DhTransformId: protocol.ECP_384,
	}
	kexAlgoMap[protocol.ECP_521] = &ecpGroup{
		curve:         elliptic.P521(),
		DhTransformId: protocol.ECP_521,
	}
}

// implements dhGroup interface
type ecpGroup struct {
	curve elliptic.Curve
	protocol.DhTransformId
}

func (group *ecpGroup) TransformId() protocol.DhTransformId {
	return group.DhTransformId
}

func (group *ecpGroup) byteLen() int {
	return (group.curve.Params().BitSize + 7) >> 3
}

// rfc 5903: the public value is x | y, without the point format octet
// that the stdlib marshalling adds
func (group *ecpGroup) marshal(x, y *big.Int) []byte {
	return elliptic.Marshal(group.curve, x, y)[1:]
}

func (group *ecpGroup) Generate(randSource io.Reader) (private, public []byte, err error) {
	private, x, y, err := elliptic.GenerateKey(group.curve, randSource)
	if err != nil {
		return
	}
	public = group.marshal(x, y)
	return
}

func (group *ecpGroup) Public(private []byte) ([]byte, error) {
	if len(private) != group.byteLen() {
		return nil, errors.Wrapf(ErrKeyExchange, "%s private value has %d bytes", group, len(private))
	}
	x, y := group.curve.ScalarBaseMult(private)
	return group.marshal(x, y), nil
}

func (group *ecpGroup) DiffieHellman(theirPublic, myPrivate []byte) ([]byte, error) {
	if len(theirPublic) != 2*group.byteLen() {
		return nil, errors.Wrapf(ErrKeyExchange, "%s public value has %d bytes", group, len(theirPublic))
	}
	x, y := elliptic.Unmarshal(group.curve, append([]byte{4}, theirPublic...))
	if x == nil {
		return nil, errors.Wrap(ErrKeyExchange, "point not on curve")
	}
	// The Diffie-Hellman shared secret value consists of the x value of the
	// Diffie-Hellman common value.
	x, _ = group.curve.ScalarMult(x, y, myPrivate)
	return pad(x.Bytes(), group.byteLen()), nil
}
