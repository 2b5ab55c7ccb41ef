package redis_client

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSkippedWithoutAddress(t *testing.T) {
	t.Setenv("TRAVIGO_REDIS_ADDRESS", "")
	Client = nil

	require.NoError(t, Connect(false))
	assert.Nil(t, Client)
}

func TestConnect(t *testing.T) {
	redisServer := miniredis.RunT(t)

	t.Setenv("TRAVIGO_REDIS_ADDRESS", redisServer.Addr())
	t.Cleanup(func() {
		Client.Close()
		Client = nil
		QueueConnection = nil
	})

	require.NoError(t, Connect(false))

	assert.NotNil(t, Client)
	assert.NotNil(t, QueueConnection)
}

func TestConnectBadDatabase(t *testing.T) {
	t.Setenv("TRAVIGO_REDIS_ADDRESS", "localhost:6379")
	t.Setenv("TRAVIGO_REDIS_DATABASE", "first")

	assert.Error(t, Connect(true))
}
