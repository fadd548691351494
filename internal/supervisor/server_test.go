package supervisor

import (
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"

	"mcrelay/internal/config"
	"mcrelay/internal/mojang"
)

func freePort(t *testing.T) uint16 {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("finding a free port: %v", err)
	}
	defer l.Close()
	_, portStr, err := net.SplitHostPort(l.Addr().String())
	if err != nil {
		t.Fatalf("splitting addr: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parsing port: %v", err)
	}
	return uint16(port)
}

func TestStartAndShutdown(t *testing.T) {
	cfg := config.Default()
	cfg.Port = freePort(t)

	srv, err := Start(cfg, &mojang.MockVerifier{Profile: &mojang.GameProfile{ID: uuid.New(), Name: "Notch"}})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestShutdownTwiceReturnsErrNoServerRunning(t *testing.T) {
	cfg := config.Default()
	cfg.Port = freePort(t)

	srv, err := Start(cfg, &mojang.MockVerifier{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("first Shutdown: %v", err)
	}
	if err := srv.Shutdown(); err != ErrNoServerRunning {
		t.Fatalf("second Shutdown = %v, want ErrNoServerRunning", err)
	}
}

func TestVerifyUnknownTokenMisses(t *testing.T) {
	cfg := config.Default()
	cfg.Port = freePort(t)

	srv, err := Start(cfg, &mojang.MockVerifier{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Shutdown()

	if _, ok := srv.Verify("NOSUCHTOK1"); ok {
		t.Fatal("expected unknown token to miss")
	}
}

func TestOnErrorFiresForBadHandshake(t *testing.T) {
	cfg := config.Default()
	cfg.Port = freePort(t)

	srv, err := Start(cfg, &mojang.MockVerifier{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Shutdown()

	errs := make(chan error, 1)
	srv.OnError(func(err error) {
		select {
		case errs <- err:
		default:
		}
	})

	conn, err := net.Dial("tcp", "127.0.0.1:"+strconv.Itoa(int(cfg.Port)))
	if err != nil {
		t.Fatalf("dialing relay: %v", err)
	}
	defer conn.Close()

	// Junk bytes that are neither a legacy ping signature nor a well-formed
	// handshake: they frame as a 1-byte packet with an empty payload, so the
	// relay fails reading the handshake and publishes an error.
	if _, err := conn.Write([]byte{0x01, 0x02, 0x03, 0x04, 0x05}); err != nil {
		t.Fatalf("writing junk bytes: %v", err)
	}

	select {
	case <-errs:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for OnError to fire")
	}
}
