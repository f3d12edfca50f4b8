package main

import (
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ListenFailureReturnsError(t *testing.T) {
	busy, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer busy.Close()

	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("COA_SEED_FILE", "../../configs/chart_of_accounts.yaml")
	t.Setenv("POSTHOG_API_KEY", "")
	t.Setenv("PORT", strconv.Itoa(busy.Addr().(*net.TCPAddr).Port))

	done := make(chan error, 1)
	go func() { done <- run(slog.New(slog.NewTextHandler(io.Discard, nil))) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "serve http")
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after the listener failed")
	}
}
