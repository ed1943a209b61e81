package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/small-engineer/user-crud/internal/config"
	"github.com/small-engineer/user-crud/internal/infra/file"
	"github.com/small-engineer/user-crud/internal/infra/mem"
)

func TestNewRepo(t *testing.T) {
	cfg := config.Default()
	r, release, err := newRepo(context.Background(), cfg)
	require.NoError(t, err)
	defer release()
	assert.IsType(t, &mem.UserRepo{}, r)

	cfg.Storage = config.StorageFile
	cfg.DataFile = filepath.Join(t.TempDir(), "users.json")
	r, release2, err := newRepo(context.Background(), cfg)
	require.NoError(t, err)
	defer release2()
	assert.IsType(t, &file.UserRepo{}, r)
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Addr = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
