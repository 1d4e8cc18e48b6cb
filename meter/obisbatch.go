package meter

import "github.com/edas-mass/iec62056-driver/internal/session"

// ReadObisBatch is atomic Mode 0: probe, ACK, drain the full readout,
// parse, and return each requested code's value (with "*unit" if present)
// or the empty string if the code is absent from the readout.
func (s *Session) ReadObisBatch(codes []string, params ConnectionParams) (map[string]string, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	port, _, _, err := s.handshakeAndAck(params, session.ModeFull)
	if err != nil {
		return nil, err
	}

	items, _, err := s.drainAndParse(port, obisBatchBufSize, obisBatchIdle)
	s.teardown(port)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]ObisItem, len(items))
	for _, it := range items {
		byCode[it.Code] = it
	}

	result := make(map[string]string, len(codes))
	for _, code := range codes {
		item, ok := byCode[code]
		if !ok {
			result[code] = ""
			continue
		}
		if item.Unit != "" {
			result[code] = item.Value + "*" + item.Unit
		} else {
			result[code] = item.Value
		}
	}
	return result, nil
}
