package protocol

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

//   Proposal Substructure

func (prop *SaProposal) IsSpiSizeCorrect(spiSize int) bool {
	switch prop.ProtocolId {
	case IKE:
		// 0 in IKE_SA_INIT, 8 when rekeying
		return spiSize == 0 || spiSize == 8
	case ESP, AH:
		return spiSize == 4
	}
	return false
}

func decodeProposal(b []byte) (prop *SaProposal, isLast bool, used int, err error) {
	if len(b) < MIN_LEN_PROPOSAL {
		err = errors.Wrapf(ErrInvalidSyntax, "proposal too small %d < %d", len(b), MIN_LEN_PROPOSAL)
		return
	}
	switch b[0] {
	case 0:
		isLast = true
	case 2:
	default:
		err = errors.Wrapf(ErrInvalidSyntax, "bad proposal substructure marker %d", b[0])
		return
	}
	propLength := int(binary.BigEndian.Uint16(b[2:]))
	prop = &SaProposal{
		Number:     b[4],
		ProtocolId: ProtocolId(b[5]),
	}
	spiSize := int(b[6])
	numTransforms := int(b[7])
	// variable parts
	// spi
	used = MIN_LEN_PROPOSAL + spiSize
	if propLength < used || len(b) < propLength {
		err = errors.Wrapf(ErrInvalidSyntax, "proposal length %d, spi size %d, have %d", propLength, spiSize, len(b))
		return
	}
	if numTransforms > MaxTransforms {
		err = errors.Wrapf(ErrPayloadChain, "%d transforms in proposal", numTransforms)
		return
	}
	prop.Spi = copyBytes(b[MIN_LEN_PROPOSAL:used])
	b = b[used:propLength]
	sawLast := false
	for len(b) > 0 && !sawLast {
		if len(prop.SaTransforms) == numTransforms {
			err = errors.Wrapf(ErrInvalidSyntax, "more transforms than the declared %d", numTransforms)
			return
		}
		trans, last, usedT, errT := decodeTransform(b)
		if errT != nil {
			err = errT
			return
		}
		prop.SaTransforms = append(prop.SaTransforms, trans)
		b = b[usedT:]
		sawLast = last
	}
	if len(b) > 0 {
		err = errors.Wrapf(ErrInvalidSyntax, "extra bytes at end of proposal: %d", len(b))
		return
	}
	if numTransforms > 0 && !sawLast {
		err = errors.Wrap(ErrInvalidSyntax, "proposal without a last transform")
		return
	}
	if len(prop.SaTransforms) != numTransforms {
		err = errors.Wrapf(ErrInvalidSyntax, "incorrect number of transforms: %d != %d",
			len(prop.SaTransforms), numTransforms)
		return
	}
	used = propLength
	return
}

func (prop *SaProposal) encode(isLast bool) (b []byte) {
	b = make([]byte, MIN_LEN_PROPOSAL)
	if !isLast {
		b[0] = 2
	}
	b[4] = prop.Number
	b[5] = uint8(prop.ProtocolId)
	b[6] = uint8(len(prop.Spi))
	b[7] = uint8(len(prop.SaTransforms))
	b = append(b, prop.Spi...)
	for idx, tr := range prop.SaTransforms {
		b = append(b, tr.encode(idx == len(prop.SaTransforms)-1)...)
	}
	binary.BigEndian.PutUint16(b[2:], uint16(len(b)))
	return
}
