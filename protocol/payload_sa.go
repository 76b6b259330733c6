package protocol

import "github.com/pkg/errors"

// SA payload

func (s *SaPayload) Type() PayloadType {
	return PayloadTypeSA
}

func (s *SaPayload) Encode() (b []byte) {
	for idx, prop := range s.Proposals {
		b = append(b, prop.encode(idx == len(s.Proposals)-1)...)
	}
	return
}

func (s *SaPayload) Decode(b []byte) (err error) {
	// Header has already been decoded
	sawLast := false
	for len(b) > 0 && !sawLast {
		if len(s.Proposals) == MaxProposals {
			return errors.Wrapf(ErrPayloadChain, "more than %d proposals", MaxProposals)
		}
		prop, last, used, errP := decodeProposal(b)
		if errP != nil {
			return errP
		}
		s.Proposals = append(s.Proposals, prop)
		b = b[used:]
		sawLast = last
	}
	if !sawLast {
		return errors.Wrap(ErrInvalidSyntax, "SA payload without a last proposal")
	}
	if len(b) > 0 {
		return errors.Wrapf(ErrInvalidSyntax, "%d bytes after last proposal", len(b))
	}
	return
}
