package ipc

import (
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

// startServer listens on a unix socket in a temp dir and hands the accepted
// connection to the test over a channel.
func startServer(t *testing.T) (string, <-chan net.Conn) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "geth.ipc")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	conns := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		conns <- conn
	}()
	return path, conns
}

func collect(t *testing.T) (*Transport, <-chan json.RawMessage, <-chan error) {
	t.Helper()

	msgs := make(chan json.RawMessage, 16)
	errs := make(chan error, 1)
	tr := New(zap.NewNop(), time.Second)
	tr.SetHandlers(
		func(raw json.RawMessage) { msgs <- raw },
		func(err error) { errs <- err },
	)
	return tr, msgs, errs
}

func TestConnectAndDeliver(t *testing.T) {
	path, conns := startServer(t)
	tr, msgs, _ := collect(t)

	if err := tr.Connect(path); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer tr.Close()

	server := <-conns
	defer server.Close()

	server.Write([]byte(`{"jsonrpc":"2.0","id":0,"result":"0x0"}`))

	select {
	case raw := <-msgs:
		var resp struct {
			Result string `json:"result"`
		}
		if err := json.Unmarshal(raw, &resp); err != nil || resp.Result != "0x0" {
			t.Errorf("unexpected message %s (err %v)", raw, err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no message delivered")
	}
}

// A single envelope split across several socket writes must still come out
// as one message, and two envelopes in one write as two messages.
func TestFramingAcrossFragmentedReads(t *testing.T) {
	path, conns := startServer(t)
	tr, msgs, _ := collect(t)

	if err := tr.Connect(path); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer tr.Close()

	server := <-conns
	defer server.Close()

	// Fragmented: one envelope in three pieces.
	server.Write([]byte(`{"jsonrpc":"2.0",`))
	time.Sleep(20 * time.Millisecond)
	server.Write([]byte(`"id":1,"re`))
	time.Sleep(20 * time.Millisecond)
	server.Write([]byte(`sult":"0x2a"}`))

	// Coalesced: two envelopes back to back in one write.
	server.Write([]byte(`{"jsonrpc":"2.0","id":2,"result":"0x1"}{"jsonrpc":"2.0","id":3,"result":"0x2"}`))

	var ids []int
	for i := 0; i < 3; i++ {
		select {
		case raw := <-msgs:
			var resp struct {
				ID int `json:"id"`
			}
			if err := json.Unmarshal(raw, &resp); err != nil {
				t.Fatalf("message %d not a complete envelope: %v", i, err)
			}
			ids = append(ids, resp.ID)
		case <-time.After(2 * time.Second):
			t.Fatalf("got %d messages, want 3", len(ids))
		}
	}

	for i, want := range []int{1, 2, 3} {
		if ids[i] != want {
			t.Errorf("message %d has id %d, want %d", i, ids[i], want)
		}
	}
}

func TestReadErrorReported(t *testing.T) {
	path, conns := startServer(t)
	tr, _, errs := collect(t)

	if err := tr.Connect(path); err != nil {
		t.Fatalf("connect: %v", err)
	}

	server := <-conns
	server.Close() // peer hangup, not a deliberate local close

	select {
	case err := <-errs:
		if err == nil {
			t.Error("expected a transport error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("peer hangup not reported")
	}

	if tr.Connected() {
		t.Error("transport still reports connected after peer hangup")
	}
}

func TestCloseSuppressesReadError(t *testing.T) {
	path, conns := startServer(t)
	tr, _, errs := collect(t)

	if err := tr.Connect(path); err != nil {
		t.Fatalf("connect: %v", err)
	}
	server := <-conns
	defer server.Close()

	tr.Close()

	select {
	case err := <-errs:
		t.Errorf("deliberate close reported as error: %v", err)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestConnectErrors(t *testing.T) {
	tr, _, _ := collect(t)

	if err := tr.Connect(filepath.Join(t.TempDir(), "missing.ipc")); err == nil {
		t.Error("connect to missing socket should fail")
	}

	if _, err := tr.Write([]byte("x")); err == nil {
		t.Error("write while disconnected should fail")
	}

	path, conns := startServer(t)
	if err := tr.Connect(path); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer tr.Close()
	server := <-conns
	defer server.Close()

	if err := tr.Connect(path); err == nil {
		t.Error("second connect should report already connected")
	}
}
