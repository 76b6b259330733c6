package protocol

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

//   Transform Substructure

const attributeFormatTV = 0x8000

func decodeAttribute(b []byte) (attr *TransformAttribute, used int, err error) {
	if len(b) < MIN_LEN_ATTRIBUTE {
		err = errors.Wrapf(ErrInvalidSyntax, "attribute too small %d < %d", len(b), MIN_LEN_ATTRIBUTE)
		return
	}
	at := binary.BigEndian.Uint16(b)
	// key length is the only attribute defined for IKEv2, and it is always TV encoded
	if at&attributeFormatTV == 0 || AttributeType(at&0x7fff) != ATTRIBUTE_TYPE_KEY_LENGTH {
		err = errors.Wrapf(ErrInvalidSyntax, "unsupported attribute type, 0x%x", at)
		return
	}
	attr = &TransformAttribute{
		Type:  ATTRIBUTE_TYPE_KEY_LENGTH,
		Value: binary.BigEndian.Uint16(b[2:]),
	}
	used = MIN_LEN_ATTRIBUTE
	return
}

func decodeTransform(b []byte) (trans *SaTransform, isLast bool, used int, err error) {
	if len(b) < MIN_LEN_TRANSFORM {
		err = errors.Wrapf(ErrInvalidSyntax, "transform too small %d < %d", len(b), MIN_LEN_TRANSFORM)
		return
	}
	switch b[0] {
	case 0:
		isLast = true
	case 3:
	default:
		err = errors.Wrapf(ErrInvalidSyntax, "bad transform substructure marker %d", b[0])
		return
	}
	trLength := int(binary.BigEndian.Uint16(b[2:]))
	if trLength < MIN_LEN_TRANSFORM || len(b) < trLength {
		err = errors.Wrapf(ErrInvalidSyntax, "transform length %d, have %d", trLength, len(b))
		return
	}
	trans = &SaTransform{
		Transform: Transform{
			Type:        TransformType(b[4]),
			TransformId: binary.BigEndian.Uint16(b[6:]),
		},
	}
	// variable parts
	b = b[MIN_LEN_TRANSFORM:trLength]
	for nattr := 0; len(b) > 0; nattr++ {
		if nattr == 1 {
			// only key length exists, and it may appear once
			err = errors.Wrap(ErrInvalidSyntax, "repeated transform attribute")
			return
		}
		attr, attrUsed, attrErr := decodeAttribute(b)
		if attrErr != nil {
			err = attrErr
			return
		}
		b = b[attrUsed:]
		trans.KeyLength = attr.Value
	}
	used = trLength
	return
}

func (trans *SaTransform) encode(isLast bool) (b []byte) {
	b = make([]byte, MIN_LEN_TRANSFORM)
	if !isLast {
		b[0] = 3
	}
	b[4] = uint8(trans.Transform.Type)
	binary.BigEndian.PutUint16(b[6:], trans.Transform.TransformId)
	if trans.KeyLength != 0 {
		attr := make([]byte, MIN_LEN_ATTRIBUTE)
		binary.BigEndian.PutUint16(attr, attributeFormatTV|uint16(ATTRIBUTE_TYPE_KEY_LENGTH)) // key length in bits
		binary.BigEndian.PutUint16(attr[2:], trans.KeyLength)
		b = append(b, attr...)
	}
	binary.BigEndian.PutUint16(b[2:], uint16(len(b)))
	return
}

func (tr *SaTransform) IsEqual(other *SaTransform) bool {
	if tr == nil || other == nil {
		return false
	}
	return tr.KeyLength == other.KeyLength &&
		tr.Transform.Type == other.Transform.Type &&
		tr.Transform.TransformId == other.Transform.TransformId
}
