package server

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/sagararora86/ember/internal/client"
	"github.com/sagararora86/ember/internal/engine/storeengine"
	"github.com/sagararora86/ember/internal/protocol"
	"github.com/sagararora86/ember/pkg/kvserrors"
	"github.com/sagararora86/ember/pkg/logging"
)

func startTestServer(t *testing.T) (addr string, srv *Server, teardown func()) {
	t.Helper()

	eng, err := storeengine.Open(t.TempDir(), logging.Noop())
	if err != nil {
		t.Fatalf("storeengine.Open: %v", err)
	}

	srv, err = New("127.0.0.1:0", eng, logging.Noop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Serve(ctx)
		close(done)
	}()

	return srv.Addr().String(), srv, func() {
		cancel()
		<-done
		eng.Close()
	}
}

func TestServerSetGetRemoveRoundTrip(t *testing.T) {
	addr, _, teardown := startTestServer(t)
	defer teardown()

	c := client.New(addr)

	if err := c.Set("foo", "bar"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get("foo")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "bar" {
		t.Errorf("Get = %q, want %q", got, "bar")
	}

	if err := c.Remove("foo"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if _, err := c.Get("foo"); !kvserrors.IsKeyNotFound(err) {
		t.Errorf("Get after Remove err = %v, want KindKeyNotFound", err)
	}
}

func TestServerGetAbsentKeyOverNetwork(t *testing.T) {
	addr, _, teardown := startTestServer(t)
	defer teardown()

	c := client.New(addr)
	_, err := c.Get("absent")
	if !kvserrors.IsKeyNotFound(err) {
		t.Errorf("Get(absent) err = %v, want KindKeyNotFound", err)
	}
}

func TestServerRemoveAbsentKeyOverNetwork(t *testing.T) {
	addr, _, teardown := startTestServer(t)
	defer teardown()

	c := client.New(addr)
	err := c.Remove("absent")
	if !kvserrors.IsKeyNotFound(err) {
		t.Errorf("Remove(absent) err = %v, want KindKeyNotFound", err)
	}
}

func TestServerRejectsUnknownOp(t *testing.T) {
	addr, _, teardown := startTestServer(t)
	defer teardown()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(map[string]string{"op": "bogus", "key": "k"}); err != nil {
		t.Fatalf("write malformed request: %v", err)
	}

	resp, err := protocol.DecodeResponse(conn)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if !resp.IsUnknownCommand() {
		t.Errorf("response = %+v, want Unknown Command", resp)
	}
}

// TestShutdownAfterCompletedRequest exercises Server.Shutdown directly:
// once a request has been served, it returns nil well within its deadline.
func TestShutdownAfterCompletedRequest(t *testing.T) {
	addr, srv, teardown := startTestServer(t)
	defer teardown()

	c := client.New(addr)
	if err := c.Set("foo", "bar"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	shutdownDone := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		shutdownDone <- srv.Shutdown(ctx)
	}()

	select {
	case err := <-shutdownDone:
		if err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Shutdown did not complete in time")
	}
}
