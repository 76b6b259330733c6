package crypto

import (
	"crypto/subtle"

	"github.com/pkg/errors"
)

// KeySet holds the keys of an IKE SA, rfc 7296 2.14.
type KeySet struct {
	SkD        []byte // further keying material for child sa
	SkAi, SkAr []byte // integrity protection keys
	SkEi, SkEr []byte // encryption keys
	SkPi, SkPr []byte // used when generating an AUTH
}

// Equal compares in constant time.
func (k *KeySet) Equal(o *KeySet) bool {
	if k == nil || o == nil {
		return k == o
	}
	eq := func(a, b []byte) bool {
		return len(a) == len(b) && subtle.ConstantTimeCompare(a, b) == 1
	}
	return eq(k.SkD, o.SkD) && eq(k.SkAi, o.SkAi) && eq(k.SkAr, o.SkAr) &&
		eq(k.SkEi, o.SkEi) && eq(k.SkEr, o.SkEr) && eq(k.SkPi, o.SkPi) && eq(k.SkPr, o.SkPr)
}

// SkeySeed = prf(Ni | Nr, g^ir)
func SkeySeed(prf *Prf, secret, ni, nr []byte) []byte {
	return prf.Apply(append(append([]byte{}, ni...), nr...), secret)
}

// DeriveKeys computes the key set of a new IKE SA:
//  {SK_d | SK_ai | SK_ar | SK_ei | SK_er | SK_pi | SK_pr}
//      = prf+ (SKEYSEED, Ni | Nr | SPIi | SPIr)
func DeriveKeys(cs *CipherSuite, secret, ni, nr, spiI, spiR []byte) (*KeySet, error) {
	if len(secret) == 0 {
		return nil, errors.Wrap(ErrKeyExchange, "no shared secret")
	}
	if len(ni) == 0 || len(nr) == 0 {
		return nil, errors.New("missing nonce")
	}
	skeyseed := SkeySeed(cs.Prf, secret, ni, nr)
	// SK_d, SK_pi, and SK_pr MUST be prfLength
	prfLen := cs.Prf.Length
	kmLen := 3*prfLen + 2*cs.KeyLen + 2*cs.MacKeyLen
	seed := append(append(append(append([]byte{}, ni...), nr...), spiI...), spiR...)
	keymat := cs.Prf.prfplus(skeyseed, seed, kmLen)

	next := func(n int) []byte {
		k := keymat[:n:n]
		keymat = keymat[n:]
		return k
	}
	return &KeySet{
		SkD:  next(prfLen),
		SkAi: next(cs.MacKeyLen),
		SkAr: next(cs.MacKeyLen),
		SkEi: next(cs.KeyLen),
		SkEr: next(cs.KeyLen),
		SkPi: next(prfLen),
		SkPr: next(prfLen),
	}, nil
}
