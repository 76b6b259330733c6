package state

import "fmt"

// State of an IKE_SA_INIT negotiation.
type State uint32

const (
	Idle State = iota
	// initiator has sent its request and waits for the response
	InitSent
	// responder has accepted a request and is building the response
	InitReceived
	Established
	Failed
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case InitSent:
		return "INIT_SENT"
	case InitReceived:
		return "INIT_RECEIVED"
	case Established:
		return "ESTABLISHED"
	case Failed:
		return "FAILED"
	case Aborted:
		return "ABORTED"
	default:
		return fmt.Sprintf("State(%d)", uint32(s))
	}
}

// Retryable states keep a request that is retransmitted on a timer.
func (s State) Retryable() bool {
	return s == InitSent
}

// Terminal states never change again.
func (s State) Terminal() bool {
	return s == Failed || s == Aborted
}
