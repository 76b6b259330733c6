package ike

import (
	"crypto/rand"
	"io"

	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

// MakeSpi returns a random, nonzero IKE SPI.
func MakeSpi() (protocol.Spi, error) {
	return makeSpi(rand.Reader)
}

func makeSpi(r io.Reader) (protocol.Spi, error) {
	spi := make(protocol.Spi, 8)
	for {
		if _, err := io.ReadFull(r, spi); err != nil {
			return nil, errors.Wrap(err, "spi")
		}
		if !spi.IsZero() {
			return spi, nil
		}
	}
}

var zeroSpi = protocol.Spi{0, 0, 0, 0, 0, 0, 0, 0}
