package main

import (
	"bytes"
	"testing"

	"github.com/go-kit/kit/log"
	ike "github.com/msgboxio/ikecore"
	"github.com/msgboxio/ikecore/crypto"
	"github.com/msgboxio/ikecore/protocol"
)

func records(t *testing.T) (ini, res *ike.EstablishedSA, cs *crypto.CipherSuite) {
	suite := crypto.IkeSuites["chacha20poly1305-prfsha256-x25519"]
	cs, err := crypto.NewCipherSuite(suite)
	if err != nil {
		t.Fatal(err)
	}
	spiI, spiR := protocol.Spi{1, 1, 1, 1, 1, 1, 1, 1}, protocol.Spi{2, 2, 2, 2, 2, 2, 2, 2}
	keys, err := crypto.DeriveKeys(cs, bytes.Repeat([]byte{3}, 32),
		bytes.Repeat([]byte{4}, 32), bytes.Repeat([]byte{5}, 32), spiI, spiR)
	if err != nil {
		t.Fatal(err)
	}
	ini = &ike.EstablishedSA{SpiI: spiI, SpiR: spiR, Initiator: true, Transforms: suite, Keys: keys}
	r := *ini
	r.Initiator = false
	return ini, &r, cs
}

func TestLivenessAnswered(t *testing.T) {
	ini, res, cs := records(t)
	d := &daemon{logger: log.NewNopLogger()}

	req, err := sealInformational(ini, cs, 7, false)
	if err != nil {
		t.Fatal(err)
	}
	hdr, err := protocol.DecodeIkeHeader(req)
	if err != nil {
		t.Fatal(err)
	}
	if int(hdr.MsgLength) != len(req) {
		t.Fatalf("header says %d, have %d", hdr.MsgLength, len(req))
	}
	reply, err := d.answer(res, hdr, req)
	if err != nil || reply == nil {
		t.Fatalf("no reply: %v", err)
	}

	rhdr, err := protocol.DecodeIkeHeader(reply)
	if err != nil {
		t.Fatal(err)
	}
	if int(rhdr.MsgLength) != len(reply) || rhdr.MsgID != 7 ||
		!rhdr.Flags.IsResponse() || rhdr.Flags.IsInitiator() ||
		rhdr.ExchangeType != protocol.INFORMATIONAL || rhdr.NextPayload != protocol.PayloadTypeSK {
		t.Fatalf("reply header %+v", rhdr)
	}
	skE, _ := ini.InboundKeys()
	inner, err := cs.Open(reply, skE)
	if err != nil {
		t.Fatal(err)
	}
	if len(inner) != 0 {
		t.Fatalf("inner %x", inner)
	}

	// responses are not answered
	again, err := d.answer(ini, rhdr, reply)
	if err != nil || again != nil {
		t.Fatalf("answered a response: %v", err)
	}
}

func TestForwardedWrongKeys(t *testing.T) {
	ini, _, cs := records(t)
	d := &daemon{logger: log.NewNopLogger()}
	req, err := sealInformational(ini, cs, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	hdr, err := protocol.DecodeIkeHeader(req)
	if err != nil {
		t.Fatal(err)
	}
	// our own outbound message does not open with our inbound keys
	if _, err := d.answer(ini, hdr, req); err == nil {
		t.Fatal("opened with the wrong direction")
	}
}
