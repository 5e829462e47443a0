// Package testsupport provides the in-process fake netconnectd daemon and
// configuration helpers shared by tests across the repository.
package testsupport

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net"
	"path/filepath"
	"sync"
	"testing"
)

// Call records one decoded request the fake daemon received.
type Call struct {
	Command string
	Params  json.RawMessage
}

// Handler produces the reply for one command. A non-empty errMsg turns into
// an {"error": errMsg} reply; otherwise result is wrapped as {"result": ...}.
type Handler func(command string, params json.RawMessage) (result any, errMsg string)

// Daemon emulates the netconnectd control socket: it accepts one
// NUL-framed JSON request per connection and answers with one framed reply.
type Daemon struct {
	t        testing.TB
	listener net.Listener
	socket   string
	handler  Handler

	mu    sync.Mutex
	calls []Call

	wg sync.WaitGroup
}

// StartDaemon runs a fake daemon on a socket under the test's temp
// directory. It shuts down via t.Cleanup.
func StartDaemon(t testing.TB, handler Handler) *Daemon {
	t.Helper()

	socket := filepath.Join(t.TempDir(), "netconnectd.sock")
	listener, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen on fake daemon socket: %v", err)
	}

	d := &Daemon{t: t, listener: listener, socket: socket, handler: handler}
	d.wg.Add(1)
	go d.acceptLoop()
	t.Cleanup(func() {
		_ = listener.Close()
		d.wg.Wait()
	})
	return d
}

// SocketPath returns the path clients should dial.
func (d *Daemon) SocketPath() string { return d.socket }

// Calls returns a copy of all requests received so far.
func (d *Daemon) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// CallCount returns how many times the named command was received.
func (d *Daemon) CallCount(command string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	count := 0
	for _, call := range d.calls {
		if call.Command == command {
			count++
		}
	}
	return count
}

func (d *Daemon) acceptLoop() {
	defer d.wg.Done()
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return
		}
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.handleConn(conn)
		}()
	}
}

func (d *Daemon) handleConn(conn net.Conn) {
	defer conn.Close()

	request, err := ReadFrame(conn)
	if err != nil {
		return
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(request, &decoded); err != nil {
		_ = WriteFrame(conn, []byte(`{"error":"invalid request"}`))
		return
	}
	if len(decoded) != 1 {
		_ = WriteFrame(conn, []byte(`{"error":"expected exactly one command"}`))
		return
	}

	var command string
	var params json.RawMessage
	for name, raw := range decoded {
		command, params = name, raw
	}

	d.mu.Lock()
	d.calls = append(d.calls, Call{Command: command, Params: params})
	d.mu.Unlock()

	result, errMsg := d.handler(command, params)
	var reply []byte
	if errMsg != "" {
		reply, err = json.Marshal(map[string]string{"error": errMsg})
	} else {
		reply, err = json.Marshal(map[string]any{"result": result})
	}
	if err != nil {
		reply = []byte(`{"error":"fake daemon reply encode failure"}`)
	}
	_ = WriteFrame(conn, reply)
}

// ReadFrame reads one NUL-terminated frame and returns it without the
// terminator.
func ReadFrame(conn net.Conn) ([]byte, error) {
	raw, err := bufio.NewReader(conn).ReadBytes(0x00)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(raw, []byte{0x00}), nil
}

// WriteFrame writes payload followed by the frame terminator.
func WriteFrame(conn net.Conn, payload []byte) error {
	if _, err := conn.Write(payload); err != nil {
		return err
	}
	_, err := conn.Write([]byte{0x00})
	return err
}

// StartRawDaemon runs a fake daemon whose serve function receives the raw
// decoded request and the connection, giving tests full control over how
// (and whether) the reply bytes hit the wire. Each connection carries one
// request; serve runs once per connection.
func StartRawDaemon(t testing.TB, serve func(conn net.Conn, request []byte)) string {
	t.Helper()

	socket := filepath.Join(t.TempDir(), "netconnectd.sock")
	listener, err := net.Listen("unix", socket)
	if err != nil {
		t.Fatalf("listen on fake daemon socket: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer conn.Close()
				request, err := ReadFrame(conn)
				if err != nil {
					return
				}
				serve(conn, request)
			}()
		}
	}()

	t.Cleanup(func() {
		_ = listener.Close()
		wg.Wait()
	})
	return socket
}
