package redisx

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/resourcehub/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_Succeeds(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), DefaultOptions(mr.Addr(), "", 0), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}

func TestConnect_TimesOut(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	opts := ConnectOptions{
		Addr:           addr,
		ConnectTimeout: 150 * time.Millisecond,
		RetryInterval:  20 * time.Millisecond,
		MaxWait:        40 * time.Millisecond,
		PingTimeout:    20 * time.Millisecond,
	}

	_, err := Connect(context.Background(), opts, logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis unavailable")
}

func TestConnect_InvalidOptions(t *testing.T) {
	_, err := Connect(context.Background(), ConnectOptions{Addr: "x"}, logging.Discard())
	require.Error(t, err)

	_, err = Connect(context.Background(), DefaultOptions("", "", 0), logging.Discard())
	require.Error(t, err)
}
