package protocol

import "github.com/pkg/errors"

// IkeErrorCode is an error notification code that can be reported to a peer.
type IkeErrorCode uint16

func (e IkeErrorCode) Error() string {
	return NotificationType(e).String()
}

var (
	ERR_UNSUPPORTED_CRITICAL_PAYLOAD = IkeErrorCode(UNSUPPORTED_CRITICAL_PAYLOAD)
	ERR_INVALID_IKE_SPI              = IkeErrorCode(INVALID_IKE_SPI)
	ERR_INVALID_MAJOR_VERSION        = IkeErrorCode(INVALID_MAJOR_VERSION)
	ERR_INVALID_SYNTAX               = IkeErrorCode(INVALID_SYNTAX)
	ERR_INVALID_MESSAGE_ID           = IkeErrorCode(INVALID_MESSAGE_ID)
	ERR_NO_PROPOSAL_CHOSEN           = IkeErrorCode(NO_PROPOSAL_CHOSEN)
	ERR_INVALID_KE_PAYLOAD           = IkeErrorCode(INVALID_KE_PAYLOAD)
	ERR_AUTHENTICATION_FAILED        = IkeErrorCode(AUTHENTICATION_FAILED)
	ERR_TEMPORARY_FAILURE            = IkeErrorCode(TEMPORARY_FAILURE)
)

// GetIkeErrorCode reports whether nt is an error notification.
func GetIkeErrorCode(nt NotificationType) (IkeErrorCode, bool) {
	if nt > 0 && nt < 16384 {
		return IkeErrorCode(nt), true
	}
	return 0, false
}

// decode failures; each is distinct so the dispatcher can count them apart
var (
	ErrMalformedHeader     = errors.New("malformed ike header")
	ErrLengthMismatch      = errors.New("declared length does not match datagram")
	ErrUnsupportedCritical = ERR_UNSUPPORTED_CRITICAL_PAYLOAD
	ErrPayloadChain        = errors.New("payload chain exceeds bounds")
	ErrInvalidSyntax       = ERR_INVALID_SYNTAX
)

// ErrNoProposalChosen is returned by SelectProposal when nothing offered is acceptable.
var ErrNoProposalChosen = ERR_NO_PROPOSAL_CHOSEN

// IsDecodeError reports whether err stems from malformed wire data.
func IsDecodeError(err error) bool {
	switch errors.Cause(err) {
	case ErrMalformedHeader, ErrLengthMismatch, ErrUnsupportedCritical, ErrPayloadChain, ErrInvalidSyntax:
		return true
	}
	return false
}
