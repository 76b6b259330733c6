package ike

import (
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/msgboxio/ikecore/crypto"
	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

const establishedVersion = 1

// EstablishedSA is what the owner of established SAs receives. It is
// self contained so that it can be stored and picked up after a restart.
type EstablishedSA struct {
	Version       int                 `cbor:"1,keyasint"`
	SpiI          protocol.Spi        `cbor:"2,keyasint"`
	SpiR          protocol.Spi        `cbor:"3,keyasint"`
	Initiator     bool                `cbor:"4,keyasint"`
	Local         string              `cbor:"5,keyasint,omitempty"`
	Remote        string              `cbor:"6,keyasint"`
	Transforms    protocol.Transforms `cbor:"7,keyasint"`
	Keys          *crypto.KeySet      `cbor:"8,keyasint"`
	Ni            []byte              `cbor:"9,keyasint"`
	Nr            []byte              `cbor:"10,keyasint"`
	EstablishedAt time.Time           `cbor:"11,keyasint"`
}

// establishedRecord must be called with mu held.
func (sa *SA) establishedRecord() *EstablishedSA {
	rec := &EstablishedSA{
		Version:       establishedVersion,
		SpiI:          append(protocol.Spi{}, sa.spiI...),
		SpiR:          append(protocol.Spi{}, sa.spiR...),
		Initiator:     sa.role == Initiator,
		Remote:        sa.remote.String(),
		Transforms:    sa.selected,
		Keys:          sa.keys,
		Ni:            sa.ni,
		Nr:            sa.nr,
		EstablishedAt: time.Now().UTC(),
	}
	if sa.local != nil {
		rec.Local = sa.local.String()
	}
	return rec
}

var (
	handoffEnc cbor.EncMode
	handoffDec cbor.DecMode
)

func init() {
	opts := cbor.CanonicalEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	var err error
	if handoffEnc, err = opts.EncMode(); err != nil {
		panic(err)
	}
	if handoffDec, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(err)
	}
}

// the alias drops the methods, so cbor does not call back into them
type establishedSA EstablishedSA

func (est *EstablishedSA) MarshalBinary() ([]byte, error) {
	return handoffEnc.Marshal((*establishedSA)(est))
}

func (est *EstablishedSA) UnmarshalBinary(b []byte) error {
	var dec establishedSA
	if err := handoffDec.Unmarshal(b, &dec); err != nil {
		return errors.Wrap(err, "established sa")
	}
	if dec.Version != establishedVersion {
		return errors.Errorf("established sa: unsupported version %d", dec.Version)
	}
	if dec.Keys == nil || len(dec.SpiI) != 8 || len(dec.SpiR) != 8 {
		return errors.New("established sa: incomplete record")
	}
	*est = EstablishedSA(dec)
	return nil
}

// CipherSuite rebuilds the negotiated suite.
func (est *EstablishedSA) CipherSuite() (*crypto.CipherSuite, error) {
	return crypto.NewCipherSuite(est.Transforms)
}

// OutboundKeys are the encryption and integrity keys for what we send.
func (est *EstablishedSA) OutboundKeys() (skE, skA []byte) {
	if est.Initiator {
		return est.Keys.SkEi, est.Keys.SkAi
	}
	return est.Keys.SkEr, est.Keys.SkAr
}

// InboundKeys are the encryption and integrity keys for what we receive.
func (est *EstablishedSA) InboundKeys() (skE, skA []byte) {
	if est.Initiator {
		return est.Keys.SkEr, est.Keys.SkAr
	}
	return est.Keys.SkEi, est.Keys.SkAi
}
