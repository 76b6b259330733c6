package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/msgboxio/ikecore/protocol"
)

// rfc 4231 and rfc 2202, test case 2
func TestPrfVectors(t *testing.T) {
	key := []byte("Jefe")
	data := []byte("what do ya want for nothing?")
	for id, want := range map[protocol.PrfTransformId]string{
		protocol.PRF_HMAC_SHA2_256: "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		protocol.PRF_HMAC_SHA1:     "effcdf6ae5eb2fa2d27416d5f184df9c259a7c79",
	} {
		prf, err := prfTranform(uint16(id))
		if err != nil {
			t.Fatal(err)
		}
		got := prf.Apply(key, data)
		if hex.EncodeToString(got) != want {
			t.Errorf("%s: %x", id, got)
		}
		if len(got) != prf.Length {
			t.Errorf("%s: length %d != %d", id, len(got), prf.Length)
		}
	}
}

func TestPrfPlus(t *testing.T) {
	prf, err := prfTranform(uint16(protocol.PRF_HMAC_SHA2_256))
	if err != nil {
		t.Fatal(err)
	}
	key, seed := []byte("key"), []byte("seed")
	out := prf.prfplus(key, seed, 80)
	if len(out) != 80 {
		t.Fatalf("got %d bytes", len(out))
	}
	t1 := prf.Apply(key, append(append([]byte{}, seed...), 1))
	t2 := prf.Apply(key, append(append(append([]byte{}, t1...), seed...), 2))
	t3 := prf.Apply(key, append(append(append([]byte{}, t2...), seed...), 3))
	want := append(append(append([]byte{}, t1...), t2...), t3...)[:80]
	if !bytes.Equal(out, want) {
		t.Errorf("prf+ mismatch\n%x\n%x", out, want)
	}
	// a shorter request is a prefix of a longer one
	if short := prf.prfplus(key, seed, 10); !bytes.Equal(short, out[:10]) {
		t.Error("not a prefix")
	}
}

func TestUnsupportedPrf(t *testing.T) {
	if _, err := prfTranform(uint16(protocol.PRF_AES128_XCBC)); err == nil {
		t.Error("xcbc is not implemented")
	}
}
