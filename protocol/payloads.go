package protocol

import (
	"github.com/pkg/errors"
)

// Payloads keeps payloads in wire order
type Payloads struct {
	Array []Payload
}

func MakePayloads() *Payloads {
	return &Payloads{}
}

func (p *Payloads) Get(t PayloadType) Payload {
	for _, pl := range p.Array {
		if pl.Type() == t {
			return pl
		}
	}
	return nil
}

func (p *Payloads) Add(t Payload) {
	p.Array = append(p.Array, t)
}

func (p *Payloads) GetNotifications() (ns []*NotifyPayload) {
	for _, pl := range p.Array {
		if pl.Type() == PayloadTypeN {
			ns = append(ns, pl.(*NotifyPayload))
		}
	}
	return
}

func (p *Payloads) GetNotification(nt NotificationType) *NotifyPayload {
	for _, pl := range p.Array {
		if pl.Type() == PayloadTypeN {
			if n := pl.(*NotifyPayload); n.NotificationType == nt {
				return n
			}
		}
	}
	return nil
}

func DecodePayloads(b []byte, nextPayload PayloadType) (*Payloads, error) {
	payloads := MakePayloads()
	for nextPayload != PayloadTypeNone {
		if len(payloads.Array) == MaxPayloads {
			return nil, errors.Wrapf(ErrPayloadChain, "more than %d payloads", MaxPayloads)
		}
		if len(b) < PAYLOAD_HEADER_LENGTH {
			return nil, errors.Wrapf(ErrInvalidSyntax,
				"payload is too small, %d < %d", len(b), PAYLOAD_HEADER_LENGTH)
		}
		pHeader := &PayloadHeader{}
		if err := pHeader.Decode(b[:PAYLOAD_HEADER_LENGTH]); err != nil {
			return nil, err
		}
		end := PAYLOAD_HEADER_LENGTH + int(pHeader.PayloadLength)
		if len(b) < end {
			return nil, errors.Wrapf(ErrInvalidSyntax,
				"%s payload length %d exceeds remaining %d", nextPayload, end, len(b))
		}
		var payload Payload
		switch nextPayload {
		case PayloadTypeSA:
			payload = &SaPayload{PayloadHeader: pHeader}
		case PayloadTypeKE:
			payload = &KePayload{PayloadHeader: pHeader}
		case PayloadTypeIDi, PayloadTypeIDr:
			payload = &IdPayload{PayloadHeader: pHeader, IdPayloadType: nextPayload}
		case PayloadTypeAUTH:
			payload = &AuthPayload{PayloadHeader: pHeader}
		case PayloadTypeNonce:
			payload = &NoncePayload{PayloadHeader: pHeader}
		case PayloadTypeN:
			payload = &NotifyPayload{PayloadHeader: pHeader}
		case PayloadTypeCERT, PayloadTypeCERTREQ, PayloadTypeD, PayloadTypeV,
			PayloadTypeTSi, PayloadTypeTSr, PayloadTypeSK, PayloadTypeCP, PayloadTypeEAP:
			payload = &RawPayload{PayloadHeader: pHeader, PayloadType: nextPayload}
		default:
			if pHeader.IsCritical {
				return nil, errors.Wrapf(ErrUnsupportedCritical, "payload type %d", nextPayload)
			}
			payload = &RawPayload{PayloadHeader: pHeader, PayloadType: nextPayload}
		}
		pbuf := b[PAYLOAD_HEADER_LENGTH:end]
		if err := payload.Decode(pbuf); err != nil {
			return nil, err
		}
		payloads.Add(payload)
		b = b[end:]
		if nextPayload == PayloadTypeSK {
			// the encrypted payload is always last, its next field names the first inner payload
			break
		}
		nextPayload = pHeader.NextPayload
	}
	if len(b) > 0 {
		return nil, errors.Wrapf(ErrInvalidSyntax, "%d bytes remain after last payload", len(b))
	}
	return payloads, nil
}

// EncodePayloads fills in each header from array order and concatenates
// the payloads.
func EncodePayloads(payloads *Payloads) (b []byte) {
	for idx, pl := range payloads.Array {
		body := pl.Encode()
		hdr := pl.Header()
		hdr.PayloadLength = uint16(len(body))
		if pl.Type() != PayloadTypeSK {
			next := PayloadTypeNone
			if idx < len(payloads.Array)-1 {
				next = payloads.Array[idx+1].Type()
			}
			hdr.NextPayload = next
		}
		b = append(b, hdr.Encode()...)
		b = append(b, body...)
	}
	return
}

// FirstPayloadType is the value for the ike header's NextPayload field.
func (p *Payloads) FirstPayloadType() PayloadType {
	if len(p.Array) == 0 {
		return PayloadTypeNone
	}
	return p.Array[0].Type()
}

func copyBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte{}, b...)
}
