package events

import "sync"

// Kind enumerates the recorded event shape; used by Recorder and by
// server's SSE replay endpoint.
type Kind int

const (
	KindTx Kind = iota
	KindRx
	KindInfo
	KindWarn
	KindError
	KindSuccess
	KindProgress
)

// Event is one recorded sink call, in arrival order.
type Event struct {
	Kind Kind
	Code string
	Msg  string
	N    int // byte count for Tx/Rx
	Step int
	Total int
}

// Recorder records every sink call, preserving temporal order within an
// operation (§5's ordering guarantee). Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) TxBytes(code string, p []byte) {
	r.append(Event{Kind: KindTx, Code: code, N: len(p)})
}

func (r *Recorder) RxBytes(code string, n int) {
	r.append(Event{Kind: KindRx, Code: code, N: n})
}

func (r *Recorder) Info(code, msg string)    { r.append(Event{Kind: KindInfo, Code: code, Msg: msg}) }
func (r *Recorder) Warn(code, msg string)    { r.append(Event{Kind: KindWarn, Code: code, Msg: msg}) }
func (r *Recorder) Error(code, msg string)   { r.append(Event{Kind: KindError, Code: code, Msg: msg}) }
func (r *Recorder) Success(code, msg string) { r.append(Event{Kind: KindSuccess, Code: code, Msg: msg}) }

func (r *Recorder) Progress(step, total int, msg string) {
	r.append(Event{Kind: KindProgress, Step: step, Total: total, Msg: msg})
}

func (r *Recorder) append(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a snapshot of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
