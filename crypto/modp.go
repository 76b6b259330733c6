package crypto

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

// rfc 2409, 6.2
const modp1024 = `
FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74
020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437
4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE65381FFFFFFFFFFFFFFFF`

// rfc 3526, 3
const modp2048 = `
FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD129024E088A67CC74
020BBEA63B139B22514A08798E3404DDEF9519B3CD3A431B302B0A6DF25F1437
4FE1356D6D51C245E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED
EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3DC2007CB8A163BF05
98DA48361C55D39A69163FA8FD24CF5F83655D23DCA3AD961C62F356208552BB
9ED529077096966D670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B
E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9DE2BCBF695581718
3995497CEA956AE515D2261898FA051015728E5A8AACAA68FFFFFFFFFFFFFFFF`

func addModpGroups(kexAlgoMap map[protocol.DhTransformId]dhGroup) {
	for id, prime := range map[protocol.DhTransformId]string{
		protocol.MODP_1024: modp1024,
		protocol.MODP_2048: modp2048,
	} {
		p, ok := new(big.Int).SetString(trim(prime), 16)
		if !ok {
			panic("bad modp prime for " + id.String())
		}
		kexAlgoMap[id] = &modpGroup{
			g:             big.NewInt(2),
			p:             p,
			DhTransformId: id,
		}
	}
}

// implements dhGroup interface
type modpGroup struct {
	g, p *big.Int
	protocol.DhTransformId
}

func (group *modpGroup) TransformId() protocol.DhTransformId {
	return group.DhTransformId
}

func (group *modpGroup) size() int {
	return (group.p.BitLen() + 7) / 8
}

func (group *modpGroup) Generate(randSource io.Reader) (private, public []byte, err error) {
	// x in [2, p-2]
	max := new(big.Int).Sub(group.p, big.NewInt(3))
	x, err := rand.Int(randSource, max)
	if err != nil {
		return
	}
	x.Add(x, big.NewInt(2))
	private = x.Bytes()
	public, err = group.Public(private)
	return
}

func (group *modpGroup) Public(private []byte) ([]byte, error) {
	x := new(big.Int).SetBytes(private)
	if x.Sign() <= 0 {
		return nil, errors.Wrap(ErrKeyExchange, "zero private value")
	}
	// the KE data is the public value padded to the length of the prime
	return pad(new(big.Int).Exp(group.g, x, group.p).Bytes(), group.size()), nil
}

func (group *modpGroup) DiffieHellman(theirPublic, myPrivate []byte) ([]byte, error) {
	if len(theirPublic) != group.size() {
		return nil, errors.Wrapf(ErrKeyExchange, "%s public value has %d bytes", group, len(theirPublic))
	}
	y := new(big.Int).SetBytes(theirPublic)
	pMinus1 := new(big.Int).Sub(group.p, big.NewInt(1))
	if y.Cmp(big.NewInt(1)) <= 0 || y.Cmp(pMinus1) >= 0 {
		return nil, errors.Wrap(ErrKeyExchange, "DH parameter out of bounds")
	}
	x := new(big.Int).SetBytes(myPrivate)
	return pad(new(big.Int).Exp(y, x, group.p).Bytes(), group.size()), nil
}
