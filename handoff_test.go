package ike

import (
	"bytes"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/msgboxio/ikecore/crypto"
	"github.com/msgboxio/ikecore/protocol"
)

func testRecord(t *testing.T, initiator bool) *EstablishedSA {
	tkm := crypto.NewTkm(nil)
	ni, _ := tkm.Nonce(32)
	nr, _ := tkm.Nonce(32)
	secret := bytes.Repeat([]byte{0x5a}, 32)
	spiI := protocol.Spi{1, 2, 3, 4, 5, 6, 7, 8}
	spiR := protocol.Spi{9, 10, 11, 12, 13, 14, 15, 16}
	keys, err := tkm.DeriveKeys(gcmEcp256, secret, ni, nr, spiI, spiR)
	if err != nil {
		t.Fatal(err)
	}
	return &EstablishedSA{
		Version:       establishedVersion,
		SpiI:          spiI,
		SpiR:          spiR,
		Initiator:     initiator,
		Local:         initiatorAddr.String(),
		Remote:        responderAddr.String(),
		Transforms:    gcmEcp256,
		Keys:          keys,
		Ni:            ni,
		Nr:            nr,
		EstablishedAt: time.Now().UTC(),
	}
}

func TestEstablishedRoundTrip(t *testing.T) {
	rec := testRecord(t, true)
	b, err := rec.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	again, err := rec.MarshalBinary()
	if err != nil || !bytes.Equal(b, again) {
		t.Fatal("encoding is not deterministic")
	}

	var dec EstablishedSA
	if err := dec.UnmarshalBinary(b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dec.SpiI, rec.SpiI) || !bytes.Equal(dec.SpiR, rec.SpiR) ||
		!bytes.Equal(dec.Ni, rec.Ni) || !bytes.Equal(dec.Nr, rec.Nr) {
		t.Errorf("spis or nonces differ:\n%s", spew.Sdump(dec))
	}
	if dec.Initiator != rec.Initiator || dec.Local != rec.Local || dec.Remote != rec.Remote {
		t.Errorf("endpoints differ:\n%s", spew.Sdump(dec))
	}
	if !dec.Keys.Equal(rec.Keys) {
		t.Error("keys differ")
	}
	if !dec.Transforms.Within(rec.Transforms) || !rec.Transforms.Within(dec.Transforms) {
		t.Errorf("transforms differ: %s", dec.Transforms)
	}
	if !dec.EstablishedAt.Equal(rec.EstablishedAt) {
		t.Errorf("time %s != %s", dec.EstablishedAt, rec.EstablishedAt)
	}
}

func TestEstablishedRejected(t *testing.T) {
	future := testRecord(t, false)
	future.Version = establishedVersion + 1
	b, err := future.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	var dec EstablishedSA
	if err := dec.UnmarshalBinary(b); err == nil {
		t.Error("accepted an unknown version")
	}

	noKeys := testRecord(t, false)
	noKeys.Keys = nil
	b, _ = noKeys.MarshalBinary()
	if err := dec.UnmarshalBinary(b); err == nil {
		t.Error("accepted a record without keys")
	}

	shortSpi := testRecord(t, false)
	shortSpi.SpiR = protocol.Spi{1, 2, 3, 4}
	b, _ = shortSpi.MarshalBinary()
	if err := dec.UnmarshalBinary(b); err == nil {
		t.Error("accepted a short spi")
	}

	if err := dec.UnmarshalBinary([]byte{0xff, 0x00}); err == nil {
		t.Error("accepted garbage")
	}
}

func TestEstablishedKeys(t *testing.T) {
	ini := testRecord(t, true)
	res := *ini
	res.Initiator = false

	iE, iA := ini.OutboundKeys()
	rE, rA := res.InboundKeys()
	if !bytes.Equal(iE, rE) || !bytes.Equal(iA, rA) {
		t.Error("initiator outbound keys are not responder inbound keys")
	}
	iE, _ = ini.InboundKeys()
	rE, _ = res.OutboundKeys()
	if !bytes.Equal(iE, rE) {
		t.Error("responder outbound keys are not initiator inbound keys")
	}
	if bytes.Equal(iE, ini.Keys.SkEi) {
		t.Error("both directions use the same key")
	}

	cs, err := ini.CipherSuite()
	if err != nil {
		t.Fatal(err)
	}
	if !cs.IsAead() {
		t.Errorf("%s is not a combined mode suite", cs)
	}
}

func TestEstablishedSeal(t *testing.T) {
	ini := testRecord(t, true)
	res := *ini
	res.Initiator = false
	cs, err := ini.CipherSuite()
	if err != nil {
		t.Fatal(err)
	}
	hdr := (&protocol.IkeHeader{
		SpiI:         ini.SpiI,
		SpiR:         ini.SpiR,
		NextPayload:  protocol.PayloadTypeSK,
		MajorVersion: protocol.IKEV2_MAJOR_VERSION,
		ExchangeType: protocol.IKE_AUTH,
		Flags:        protocol.INITIATOR,
		MsgID:        1,
	}).Encode()
	hdr = append(hdr, protocol.PayloadHeader{NextPayload: protocol.PayloadTypeN}.Encode()...)
	inner := []byte("inner payloads")
	skE, _ := ini.OutboundKeys()
	sealed, err := cs.Seal(hdr, inner, skE)
	if err != nil {
		t.Fatal(err)
	}
	skE, _ = res.InboundKeys()
	opened, err := cs.Open(sealed, skE)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(opened, inner) {
		t.Fatalf("opened %q", opened)
	}
}
