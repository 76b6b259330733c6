package protocol

func (s *RawPayload) Type() PayloadType { return s.PayloadType }

func (s *RawPayload) Encode() []byte { return s.Data }

func (s *RawPayload) Decode(b []byte) error {
	s.Data = copyBytes(b)
	return nil
}
