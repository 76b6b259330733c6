package state

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrIllegalTransition = errors.New("illegal state transition")

func key(from, to State) uint64 {
	return (uint64(from) << 32) | uint64(to)
}

// key is source < 32 | destination
type transitions map[uint64]struct{}

func (trs transitions) add(from State, to ...State) {
	for _, dest := range to {
		k := key(from, dest)
		if _, ok := trs[k]; ok {
			panic(fmt.Sprintf("duplicate transition %s -> %s", from, dest))
		}
		trs[k] = struct{}{}
	}
}

var legal = func() transitions {
	trs := make(transitions)
	trs.add(Idle, InitSent, InitReceived, Failed, Aborted)
	// a request rebuilt after COOKIE or INVALID_KE_PAYLOAD is sent again
	trs.add(InitSent, InitSent, Established, Failed, Aborted)
	trs.add(InitReceived, Established, Failed, Aborted)
	trs.add(Established, Aborted)
	return trs
}()

// Check returns ErrIllegalTransition unless from -> to is allowed.
func Check(from, to State) error {
	if _, ok := legal[key(from, to)]; !ok {
		return errors.Wrapf(ErrIllegalTransition, "%s -> %s", from, to)
	}
	return nil
}
