package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"intranet/config"
)

func TestServe_LogsReadyAndShutsDown(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	cfg := &config.Config{
		AppName:           "Intranet Empresa",
		AppEnv:            "test",
		Port:              "0",
		NotifyWorkers:     1,
		NotifyQueueSize:   1,
		NotifyShowDelay:   10 * time.Millisecond,
		NotifyDisplay:     3 * time.Second,
		NotifyRemoveDelay: 300 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- serve(ctx, cfg, zap.New(core)) }()

	require.Eventually(t, func() bool {
		return logs.FilterMessage(ReadyMessage).Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
