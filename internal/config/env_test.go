package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Defaults(t *testing.T) {
	require.NoError(t, Init())

	c := Get()
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "https://api.devnet.solana.com", c.SolanaRPCURL)
	assert.Equal(t, "bolt", c.StoreDriver)
	assert.Equal(t, "keypairs.db", c.StorePath)
	assert.False(t, c.StoreEncrypt)
	assert.Equal(t, 30*time.Second, c.ConfirmTimeout)
	assert.Equal(t, 500*time.Millisecond, c.ConfirmPollInterval)
	assert.Equal(t, "2", c.FaucetCap.String())
	assert.Equal(t, "info", c.LogLevel)
}

func TestInit_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "leveldb")
	t.Setenv("STORE_PATH", "/tmp/wallet")
	t.Setenv("CONFIRM_TIMEOUT", "1m")
	t.Setenv("FAUCET_CAP", "0.5")
	t.Setenv("STORE_ENCRYPT", "true")

	require.NoError(t, Init())

	assert.Equal(t, "9090", GetPort())
	c := Get()
	assert.Equal(t, "leveldb", c.StoreDriver)
	assert.Equal(t, "/tmp/wallet", c.StorePath)
	assert.Equal(t, time.Minute, c.ConfirmTimeout)
	assert.Equal(t, "0.5", c.FaucetCap.String())
	assert.True(t, c.StoreEncrypt)
}

func TestInit_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown driver", "STORE_DRIVER", "sqlite"},
		{"zero timeout", "CONFIRM_TIMEOUT", "0s"},
		{"bad duration", "CONFIRM_POLL_INTERVAL", "soon"},
		{"negative cap", "FAUCET_CAP", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			assert.Error(t, Init())
		})
	}
}
