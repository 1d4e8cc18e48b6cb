package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type versionInfo struct {
	Version string `json:"version"`
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(versionInfo{Version: s.version})
}

func (s *Server) handleListMeters(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.registry.Names())
}

type meterStatus struct {
	Name              string `json:"name"`
	Connected         bool   `json:"connected"`
	InProgrammingMode bool   `json:"inProgrammingMode"`
	NegotiatedBaud    int    `json:"negotiatedBaud"`
	PortName          string `json:"portName"`
}

func (s *Server) handleMeterStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	if _, ok := s.registry.Get(name); !ok {
		http.Error(w, "meter not found", http.StatusNotFound)
		return
	}

	status := s.sessions.get(name).GetConnectionStatus()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meterStatus{
		Name:              name,
		Connected:         status.Connected,
		InProgrammingMode: status.InProgrammingMode,
		NegotiatedBaud:    status.NegotiatedBaud,
		PortName:          status.PortName,
	})
}

func (s *Server) handleMeterIdentity(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	sess := s.sessions.get(name)
	ident := sess.GetMeterIdentity()
	if ident.Manufacturer == "" {
		if cached := s.cache.Load(); cached != nil {
			if cachedIdent, ok := cached[name]; ok {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(cachedIdent)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ident)
}

// handleMeterRead triggers a synchronous ReadShort against the named meter
// and updates the on-disk identity cache with the freshly observed identity
// before the HTTP response is written; it blocks for the duration of a full
// handshake+read, which is acceptable for an operator-facing diagnostics
// endpoint but not for high-frequency polling.
func (s *Server) handleMeterRead(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	params, ok := s.registry.Get(name)
	if !ok {
		http.Error(w, "meter not found", http.StatusNotFound)
		return
	}

	sess := s.sessions.get(name)
	data, err := sess.ReadShort(params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.cache.Put(name, sess.GetMeterIdentity())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// eventWire is the JSON shape an SSE client receives for one sink call.
type eventWire struct {
	Kind string    `json:"kind"`
	Code string    `json:"code"`
	Msg  string    `json:"msg,omitempty"`
	N    int       `json:"n,omitempty"`
	Step int       `json:"step,omitempty"`
	Total int      `json:"total,omitempty"`
	At   time.Time `json:"at"`
}
