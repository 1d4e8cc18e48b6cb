package events

import "sync"

// Hub is a broadcasting Sink: every call is both recorded nowhere and fanned
// out to subscriber channels, generalizing the teacher's per-server SOL
// broadcast (sol.Manager.Subscribe/broadcast) into the single ordered
// stream the diagnostics SSE endpoint replays.
type Hub struct {
	mu   sync.RWMutex
	subs []chan Event
}

func NewHub() *Hub {
	return &Hub{}
}

// Subscribe registers a new channel; the returned channel must be passed to
// Unsubscribe when the caller is done (typically when the SSE client
// disconnects).
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 64)
	h.mu.Lock()
	h.subs = append(h.subs, ch)
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, s := range h.subs {
		if s == ch {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

func (h *Hub) broadcast(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- e:
		default: // slow subscriber, drop rather than block the driver
		}
	}
}

func (h *Hub) TxBytes(code string, p []byte) { h.broadcast(Event{Kind: KindTx, Code: code, N: len(p)}) }
func (h *Hub) RxBytes(code string, n int)    { h.broadcast(Event{Kind: KindRx, Code: code, N: n}) }
func (h *Hub) Info(code, msg string)         { h.broadcast(Event{Kind: KindInfo, Code: code, Msg: msg}) }
func (h *Hub) Warn(code, msg string)         { h.broadcast(Event{Kind: KindWarn, Code: code, Msg: msg}) }
func (h *Hub) Error(code, msg string)        { h.broadcast(Event{Kind: KindError, Code: code, Msg: msg}) }
func (h *Hub) Success(code, msg string) {
	h.broadcast(Event{Kind: KindSuccess, Code: code, Msg: msg})
}
func (h *Hub) Progress(step, total int, msg string) {
	h.broadcast(Event{Kind: KindProgress, Step: step, Total: total, Msg: msg})
}
