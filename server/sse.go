package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/edas-mass/iec62056-driver/internal/events"
)

var kindNames = map[events.Kind]string{
	events.KindTx:       "tx",
	events.KindRx:       "rx",
	events.KindInfo:     "info",
	events.KindWarn:     "warn",
	events.KindError:    "error",
	events.KindSuccess:  "success",
	events.KindProgress: "progress",
}

// handleEvents streams every driver event as it's emitted, across every
// meter session the server has touched, as newline-delimited JSON over SSE.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	ch := s.hub.Subscribe()
	defer s.hub.Unsubscribe(ch)

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			wire := eventWire{
				Kind:  kindNames[e.Kind],
				Code:  e.Code,
				Msg:   e.Msg,
				N:     e.N,
				Step:  e.Step,
				Total: e.Total,
				At:    time.Now(),
			}
			encoded, err := json.Marshal(wire)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", encoded)
			flusher.Flush()
		}
	}
}
