package protocol

// Selection is the outcome of a successful negotiation.
type Selection struct {
	// Number of the peer proposal that was accepted
	Number     uint8
	Transforms Transforms
}

// Proposal builds the single proposal a responder returns.
func (s *Selection) Proposal(spi []byte) *SaProposal {
	return &SaProposal{
		Number:       s.Number,
		ProtocolId:   IKE,
		Spi:          copyBytes(spi),
		SaTransforms: s.Transforms.AsList(),
	}
}

// SelectProposal walks the peer proposals in the order they were sent and
// returns the first that is compatible with one of the local combinations,
// trying those in local order. Proposals for other protocols, or with a
// malformed SPI, are skipped.
func SelectProposal(local []Transforms, peer []*SaProposal) (*Selection, error) {
	for _, prop := range peer {
		if prop.ProtocolId != IKE || !prop.IsSpiSizeCorrect(len(prop.Spi)) {
			continue
		}
		offered := offeredByType(prop)
		for _, want := range local {
			if compatible(want, offered) {
				return &Selection{
					Number:     prop.Number,
					Transforms: want.clone(),
				}, nil
			}
		}
	}
	return nil, ErrNoProposalChosen
}

func offeredByType(prop *SaProposal) map[TransformType][]*SaTransform {
	offered := make(map[TransformType][]*SaTransform)
	for _, tr := range prop.SaTransforms {
		offered[tr.Transform.Type] = append(offered[tr.Transform.Type], tr)
	}
	return offered
}

func compatible(want Transforms, offered map[TransformType][]*SaTransform) bool {
	for ty, tr := range want {
		if !containsTransform(offered[ty], tr) {
			return false
		}
	}
	// a type we do not use is only acceptable if the peer also offers NONE for it
	for ty, list := range offered {
		if _, ok := want[ty]; ok {
			continue
		}
		none := false
		for _, tr := range list {
			if tr.Transform.TransformId == 0 {
				none = true
				break
			}
		}
		if !none {
			return false
		}
	}
	return true
}

func containsTransform(list []*SaTransform, tr *SaTransform) bool {
	for _, o := range list {
		if o.IsEqual(tr) {
			return true
		}
	}
	return false
}

// HasSingleTransformPerType is what a responder's chosen proposal must satisfy.
func (prop *SaProposal) HasSingleTransformPerType() bool {
	seen := make(map[TransformType]bool)
	for _, tr := range prop.SaTransforms {
		if seen[tr.Transform.Type] {
			return false
		}
		seen[tr.Transform.Type] = true
	}
	return len(seen) > 0
}

func (t Transforms) clone() Transforms {
	c := make(Transforms, len(t))
	for ty, tr := range t {
		c[ty] = &SaTransform{Transform: tr.Transform, KeyLength: tr.KeyLength}
	}
	return c
}
