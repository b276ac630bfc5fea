package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		expected  Config
		expectErr bool
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			expected: Config{
				Port:           "8080",
				LogLevel:       "info",
				IdempotencyTTL: 24 * time.Hour,
				SeedAuctions:   3,
			},
		},
		{
			name: "all_set",
			env: map[string]string{
				"PORT":            "9090",
				"LOG_LEVEL":       "debug",
				"DB_PATH":         "/tmp/ebuy.db",
				"REDIS_ADDR":      "localhost:6379",
				"IDEMPOTENCY_TTL": "90m",
				"SEED_AUCTIONS":   "0",
			},
			expected: Config{
				Port:           "9090",
				LogLevel:       "debug",
				DBPath:         "/tmp/ebuy.db",
				RedisAddr:      "localhost:6379",
				IdempotencyTTL: 90 * time.Minute,
				SeedAuctions:   0,
			},
		},
		{name: "bad_ttl", env: map[string]string{"IDEMPOTENCY_TTL": "soon"}, expectErr: true},
		{name: "negative_ttl", env: map[string]string{"IDEMPOTENCY_TTL": "-1h"}, expectErr: true},
		{name: "bad_seed", env: map[string]string{"SEED_AUCTIONS": "many"}, expectErr: true},
		{name: "negative_seed", env: map[string]string{"SEED_AUCTIONS": "-2"}, expectErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := load(envOf(tc.env))
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, cfg)
		})
	}
}

func TestAddr(t *testing.T) {
	t.Parallel()
	require.Equal(t, ":8080", Config{Port: "8080"}.Addr())
}
