package ike

import (
	"github.com/davecgh/go-spew/spew"
)

// dump defers spew formatting until a log line is actually written.
type dump struct {
	v interface{}
}

func (d dump) String() string {
	return spew.Sdump(d.v)
}
