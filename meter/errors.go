package meter

import "github.com/edas-mass/iec62056-driver/internal/errs"

// Sentinel errors (spec §7). Callers recover the kind with errors.Is.
var (
	ErrNotConnected    = errs.ErrNotConnected
	ErrBusy            = errs.ErrBusy
	ErrPortOpenFailed  = errs.ErrPortOpenFailed
	ErrNoResponse      = errs.ErrNoResponse
	ErrIdentParseError = errs.ErrIdentParseError
	ErrReadTimeout     = errs.ErrReadTimeout
	ErrBccMismatch     = errs.ErrBccMismatch
	ErrAuthRejected    = errs.ErrAuthRejected
	ErrAuthTimeout     = errs.ErrAuthTimeout
	ErrWriteRejected   = errs.ErrWriteRejected
	ErrProtocolError   = errs.ErrProtocolError
	ErrIoError         = errs.ErrIoError
)
