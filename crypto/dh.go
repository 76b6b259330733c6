package crypto

import (
	"io"
	"strings"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

var (
	ErrKeyExchange          = errors.New("invalid key exchange value")
	ErrUnsupportedTransform = errors.New("unsupported transform")
)

// dhGroup works on the wire form of public values and on opaque private
// values, so nothing outside the group has to know how either is encoded.
type dhGroup interface {
	TransformId() protocol.DhTransformId
	Generate(randSource io.Reader) (private, public []byte, err error)
	Public(private []byte) ([]byte, error)
	DiffieHellman(theirPublic, myPrivate []byte) ([]byte, error)
}

var kexAlgoMap map[protocol.DhTransformId]dhGroup

func init() {
	kexAlgoMap = make(map[protocol.DhTransformId]dhGroup)
	addModpGroups(kexAlgoMap)
	addEcpGroups(kexAlgoMap)
	addCurve25519(kexAlgoMap)
}

func getGroup(id protocol.DhTransformId) (dhGroup, error) {
	grp, ok := kexAlgoMap[id]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedTransform, "dh group %s", id)
	}
	return grp, nil
}

// SupportedGroup reports whether a key exchange can be done for id.
func SupportedGroup(id protocol.DhTransformId) bool {
	_, ok := kexAlgoMap[id]
	return ok
}

// PublicKey recomputes the public value that belongs to private.
func PublicKey(id protocol.DhTransformId, private []byte) ([]byte, error) {
	grp, err := getGroup(id)
	if err != nil {
		return nil, err
	}
	return grp.Public(private)
}

func trim(grp string) string {
	mm := func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\t' {
			return -1
		}
		return r
	}
	return strings.Map(mm, grp)
}

// pad left pads b with zeroes to length n
func pad(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}
