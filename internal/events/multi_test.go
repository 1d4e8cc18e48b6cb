package events

import "testing"

func TestMultiFansOutToEverySink(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()
	m := Multi{a, b}

	m.TxBytes("meter.connect", []byte{1, 2})
	m.Success("meter.connect", "ok")

	for _, r := range []*Recorder{a, b} {
		events := r.Events()
		if len(events) != 2 {
			t.Fatalf("got %d events, want 2", len(events))
		}
		if events[0].Kind != KindTx || events[1].Kind != KindSuccess {
			t.Fatalf("got %+v", events)
		}
	}
}

func TestMultiEmptyIsNoop(t *testing.T) {
	var m Multi
	m.Info("code", "msg") // must not panic
}
