package protocol

import (
	"fmt"
	"sort"
	"strings"
)

// Transforms is one acceptable combination, at most one transform per type.
type Transforms map[TransformType]*SaTransform

// IkeTransform builds an IKE SA combination. AUTH_NONE leaves out the
// integrity transform, as required for combined mode ciphers.
func IkeTransform(encr EncrTransformId, keyBits uint16, auth AuthTransformId, prf PrfTransformId, dh DhTransformId) Transforms {
	trs := Transforms{
		TRANSFORM_TYPE_ENCR: &SaTransform{
			Transform: Transform{Type: TRANSFORM_TYPE_ENCR, TransformId: uint16(encr)},
			KeyLength: keyBits,
		},
		TRANSFORM_TYPE_PRF: &SaTransform{
			Transform: Transform{Type: TRANSFORM_TYPE_PRF, TransformId: uint16(prf)},
		},
		TRANSFORM_TYPE_DH: &SaTransform{
			Transform: Transform{Type: TRANSFORM_TYPE_DH, TransformId: uint16(dh)},
		},
	}
	if auth != AUTH_NONE {
		trs[TRANSFORM_TYPE_INTEG] = &SaTransform{
			Transform: Transform{Type: TRANSFORM_TYPE_INTEG, TransformId: uint16(auth)},
		}
	}
	return trs
}

// AsList returns the transforms ordered by transform type.
func (t Transforms) AsList() (trs []*SaTransform) {
	for _, tr := range t {
		trs = append(trs, &SaTransform{Transform: tr.Transform, KeyLength: tr.KeyLength})
	}
	sort.Slice(trs, func(i, j int) bool {
		return trs[i].Transform.Type < trs[j].Transform.Type
	})
	return
}

func (t Transforms) DhGroup() DhTransformId {
	if tr, ok := t[TRANSFORM_TYPE_DH]; ok {
		return DhTransformId(tr.Transform.TransformId)
	}
	return MODP_NONE
}

// Within is true if every transform in t is also present in other.
func (t Transforms) Within(other Transforms) bool {
	for ty, tr := range t {
		if !tr.IsEqual(other[ty]) {
			return false
		}
	}
	return true
}

func (t Transforms) String() string {
	var ss []string
	for _, tr := range t.AsList() {
		ss = append(ss, tr.String())
	}
	return strings.Join(ss, "+")
}

// ProposalsFromTransforms numbers the combinations 1..n in order.
func ProposalsFromTransforms(prot ProtocolId, trs []Transforms, spi []byte) (props Proposals) {
	for idx, tr := range trs {
		props = append(props, &SaProposal{
			Number:       uint8(idx + 1),
			ProtocolId:   prot,
			Spi:          copyBytes(spi),
			SaTransforms: tr.AsList(),
		})
	}
	return
}

func (tr *SaTransform) String() string {
	var name string
	switch tr.Transform.Type {
	case TRANSFORM_TYPE_ENCR:
		name = EncrTransformId(tr.Transform.TransformId).String()
	case TRANSFORM_TYPE_PRF:
		name = PrfTransformId(tr.Transform.TransformId).String()
	case TRANSFORM_TYPE_INTEG:
		name = AuthTransformId(tr.Transform.TransformId).String()
	case TRANSFORM_TYPE_DH:
		name = DhTransformId(tr.Transform.TransformId).String()
	default:
		name = fmt.Sprintf("%s(%d)", tr.Transform.Type, tr.Transform.TransformId)
	}
	if tr.KeyLength != 0 {
		return fmt.Sprintf("%s_%d", name, tr.KeyLength)
	}
	return name
}
