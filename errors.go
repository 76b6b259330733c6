package ike

import (
	"github.com/msgboxio/ikecore/protocol"
	"github.com/pkg/errors"
)

var (
	// ErrPolicyDenied is returned by a Policy that does not allow the peer.
	ErrPolicyDenied = errors.New("policy denied")
	// ErrNoMatchingProposal is the failure reason when negotiation found nothing in common.
	ErrNoMatchingProposal = protocol.ErrNoProposalChosen
	ErrCryptoFailure      = errors.New("crypto failure")
	ErrTimeout            = errors.New("no response from peer")
	ErrAborted            = errors.New("negotiation aborted")
	ErrPeerNotification   = errors.New("peer sent error notification")
	ErrInvalidResponse    = errors.New("invalid response")

	errEngineClosed = errors.New("engine is closed")
)

func peerError(code protocol.IkeErrorCode) error {
	return errors.Wrap(ErrPeerNotification, code.Error())
}
