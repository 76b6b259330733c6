// +build gofuzz

package fuzz

import (
	"bytes"

	"github.com/msgboxio/ikecore/protocol"
)

// Fuzz checks that anything the codec accepts re-encodes to the same bytes.
func Fuzz(data []byte) int {
	hdr, err := protocol.DecodeIkeHeader(data)
	if err != nil {
		return 0
	}
	if int(hdr.MsgLength) != len(data) {
		return 0
	}
	plData := data[protocol.IKE_HEADER_LEN:]
	payloads, err := protocol.DecodePayloads(plData, hdr.NextPayload)
	if err != nil {
		if !protocol.IsDecodeError(err) {
			panic("unclassified decode error: " + err.Error())
		}
		return 0
	}
	if enc := hdr.Encode(); !bytes.Equal(enc, data[:protocol.IKE_HEADER_LEN]) {
		panic("unequal header")
	}
	if pld := protocol.EncodePayloads(payloads); !bytes.Equal(pld, plData) {
		panic("unequal payload")
	}
	return 1
}
