package netconnectd

import "errors"

// Kind classifies a failed transaction.
type Kind int

const (
	// KindConnect covers dial failures: socket path missing, not a socket,
	// or nothing listening on it.
	KindConnect Kind = iota + 1
	// KindTimeout covers connect or I/O operations that exceeded the
	// configured deadline.
	KindTimeout
	// KindFraming covers streams that end before a frame terminator arrives.
	KindFraming
	// KindDecode covers replies that are not valid JSON or carry neither a
	// "result" nor an "error" key.
	KindDecode
	// KindDaemon covers explicit application-level rejections from
	// netconnectd ("error" replies).
	KindDaemon
)

func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "connect"
	case KindTimeout:
		return "timeout"
	case KindFraming:
		return "framing"
	case KindDecode:
		return "decode"
	case KindDaemon:
		return "daemon"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by client operations. Every kind
// is recoverable from the caller's perspective: the client stays usable for
// subsequent transactions regardless of prior failures.
type Error struct {
	Kind    Kind
	Message string
	// Raw holds the offending reply bytes for decode failures so protocol
	// violations can be diagnosed from logs.
	Raw string
	Err error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a netconnectd error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ne *Error
	return errors.As(err, &ne) && ne.Kind == kind
}
