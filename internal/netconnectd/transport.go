package netconnectd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

const (
	// frameTerminator ends every request and reply on the wire. The daemon
	// frames purely by terminator; there is no length prefix.
	frameTerminator byte = 0x00

	// readChunkSize mirrors the daemon's historical 16-byte receive window.
	// Any size works; reply reconstruction never assumes chunk alignment.
	readChunkSize = 16
)

// transport performs exactly one request/response exchange per call. It
// holds only immutable configuration and keeps no state between calls, so
// it is safe for concurrent use.
type transport struct {
	socketPath string
	timeout    time.Duration
}

// exchange opens a fresh connection, writes payload plus the frame
// terminator, and accumulates the reply until a read chunk ends with the
// terminator. The returned bytes have the terminator stripped and
// surrounding whitespace trimmed, mirroring the daemon's lenient framing.
// The connection is closed on every exit path.
func (t transport) exchange(ctx context.Context, payload []byte) ([]byte, error) {
	dialer := net.Dialer{Timeout: t.timeout}
	conn, err := dialer.DialContext(ctx, "unix", t.socketPath)
	if err != nil {
		if isTimeout(err) {
			return nil, &Error{Kind: KindTimeout, Message: fmt.Sprintf("connect to %s: %v", t.socketPath, err), Err: err}
		}
		return nil, &Error{Kind: KindConnect, Message: fmt.Sprintf("connect to %s: %v", t.socketPath, err), Err: err}
	}
	defer conn.Close()

	// One deadline covers every read and write within the transaction.
	if err := conn.SetDeadline(time.Now().Add(t.timeout)); err != nil {
		return nil, &Error{Kind: KindConnect, Message: fmt.Sprintf("set deadline: %v", err), Err: err}
	}

	frame := make([]byte, 0, len(payload)+1)
	frame = append(frame, payload...)
	frame = append(frame, frameTerminator)
	if _, err := conn.Write(frame); err != nil {
		if isTimeout(err) {
			return nil, &Error{Kind: KindTimeout, Message: fmt.Sprintf("write request: %v", err), Err: err}
		}
		return nil, &Error{Kind: KindConnect, Message: fmt.Sprintf("write request: %v", err), Err: err}
	}

	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)
	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if chunk[n-1] == frameTerminator {
				break
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, &Error{Kind: KindFraming, Message: "connection closed mid-frame", Err: err}
			}
			if isTimeout(err) {
				return nil, &Error{Kind: KindTimeout, Message: fmt.Sprintf("read reply: %v", err), Err: err}
			}
			return nil, &Error{Kind: KindFraming, Message: fmt.Sprintf("read reply: %v", err), Err: err}
		}
	}

	raw := buf.Bytes()
	raw = raw[:len(raw)-1]
	return bytes.TrimSpace(raw), nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
