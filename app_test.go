package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmfolio/web/config"
	"pmfolio/web/internal/seed"
	"pmfolio/web/profile"
)

func TestNewStoreMemoryIsSeeded(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	cfg := &config.Config{
		StoreDriver:         config.DriverMemory,
		UsernameEmailDomain: "demo.test",
		QueryTimeout:        time.Second,
	}

	s, closeFn, err := newStore(cfg, log)
	require.NoError(t, err)
	defer closeFn()

	featured, err := s.GetFeaturedProjects(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, featured, seed.DefaultOptions().Users)
}

func TestNewStoreUnknownDriver(t *testing.T) {
	_, _, err := newStore(&config.Config{StoreDriver: "mysql"}, logrus.New())
	assert.Error(t, err)
}

func TestProfileCommandKeepsLogsOffStdout(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "info")

	var stdout, stderr bytes.Buffer
	root := &cobra.Command{Use: "pmfolio"}
	root.AddCommand(profileCmd)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"profile", "nobody"})

	require.NoError(t, root.Execute())

	var page profile.Page
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &page), stdout.String())
	assert.Equal(t, profile.StateNotFound, page.State)
	assert.Contains(t, stderr.String(), "in-memory store")
}
