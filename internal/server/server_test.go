package server

import (
	"bufio"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pandablocks/pandad/internal/changeset"
	"github.com/pandablocks/pandad/internal/database"
	"github.com/pandablocks/pandad/internal/dispatch"
	"github.com/pandablocks/pandad/internal/hardware"
)

func newTestRuntime(t *testing.T) *dispatch.Runtime {
	t.Helper()
	hw := hardware.NewSimulator()
	idx := changeset.NewIndex()
	db, err := database.Load(context.Background(), database.Sources{
		Config:    strings.NewReader("TTLIN\n    VAL param uint\nSEQ\n    TABLE table\n"),
		Registers: strings.NewReader("*REG\nTTLIN 0\n    VAL 0\nSEQ 1\n    TABLE 8\n"),
	}, hw, idx)
	require.NoError(t, err)
	return dispatch.NewRuntime(db, idx)
}

func startTestServer(t *testing.T) (addr string, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	rt := newTestRuntime(t)
	srv := New(ln, rt, Config{PollInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	return ln.Addr().String(), func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("server did not shut down")
		}
	}
}

func TestServerParamWriteReadRoundTrip(t *testing.T) {
	addr, stop := startTestServer(t)
	defer stop()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	reader := bufio.NewReader(conn)

	_, err = conn.Write([]byte("TTLIN.VAL=7\n"))
	require.NoError(t, err)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "OK\n", line)

	_, err = conn.Write([]byte("TTLIN.VAL?\n"))
	require.NoError(t, err)
	line, err = reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "OK =7\n", line)
}

func TestServerTableWriteRoundTrip(t *testing.T) {
	addr, stop := startTestServer(t)
	defer stop()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	reader := bufio.NewReader(conn)

	_, err = conn.Write([]byte("SEQ.TABLE<\n1\n2\n3\n\n"))
	require.NoError(t, err)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.Equal(t, "OK\n", line)

	_, err = conn.Write([]byte("SEQ.TABLE?\n"))
	require.NoError(t, err)
	var out strings.Builder
	for {
		l, err := reader.ReadString('\n')
		require.NoError(t, err)
		out.WriteString(l)
		if l == ".\n" {
			break
		}
	}
	require.Equal(t, "!1\n!2\n!3\n.\n", out.String())
}

func TestServerUnknownCommandReportsErr(t *testing.T) {
	addr, stop := startTestServer(t)
	defer stop()

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	reader := bufio.NewReader(conn)
	_, err = conn.Write([]byte("NOSUCH.FIELD?\n"))
	require.NoError(t, err)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(line, "ERR "))
}
