package crypto

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

// Pseudo Random Function
type Prf struct {
	Apply  func(key, data []byte) []byte
	Length int
	protocol.PrfTransformId
}

func prfTranform(prfId uint16) (*Prf, error) {
	id := protocol.PrfTransformId(prfId)
	switch id {
	case protocol.PRF_HMAC_SHA1:
		return &Prf{macPrf(sha1.New), sha1.Size, id}, nil
	case protocol.PRF_HMAC_SHA2_256:
		return &Prf{macPrf(sha256.New), sha256.Size, id}, nil
	case protocol.PRF_HMAC_SHA2_384:
		return &Prf{macPrf(sha512.New384), sha512.Size384, id}, nil
	case protocol.PRF_HMAC_SHA2_512:
		return &Prf{macPrf(sha512.New), sha512.Size, id}, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedTransform, "prf %s", id)
	}
}

func macPrf(h func() hash.Hash) func(key, data []byte) []byte {
	return func(key, data []byte) []byte {
		mac := hmac.New(h, key)
		mac.Write(data)
		return mac.Sum(nil)
	}
}

// prfplus is prf+ from rfc 7296, 2.13
//   T1 = prf (K, S | 0x01)
//   T2 = prf (K, T1 | S | 0x02)
func (p *Prf) prfplus(key, data []byte, length int) []byte {
	var ret, prev []byte
	for round := 1; len(ret) < length; round++ {
		in := append(append(append([]byte{}, prev...), data...), byte(round))
		prev = p.Apply(key, in)
		ret = append(ret, prev...)
	}
	return ret[:length]
}
