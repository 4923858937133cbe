package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func Test_AppConfigFrom_AppliesDefaults(t *testing.T) {
	// act
	cfg, err := appConfigFrom(envFrom(map[string]string{"JWT_SECRET": "s3cret"}))

	// assert
	require.NoError(t, err)
	assert.Equal(t, defaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, AdapterPGXPool, cfg.DBAdapter)
	assert.Equal(t, defaultNotifierWorkers, cfg.NotifierWorkers)
	assert.InDelta(t, defaultRateLimitRPS, cfg.RateLimitRPS, 0.0001)
	assert.Equal(t, defaultShutdownTimeout, cfg.ShutdownTimeout)
	assert.Contains(t, cfg.CheckoutSuccessURL, "{CHECKOUT_SESSION_ID}")
	assert.Empty(t, cfg.RedisAddr)
}

func Test_AppConfigFrom_ReadsOverrides(t *testing.T) {
	// act
	cfg, err := appConfigFrom(envFrom(map[string]string{
		"JWT_SECRET":       "s3cret",
		"DB_ADAPTER":       "SQLX.DB",
		"NOTIFIER_WORKERS": "5",
		"RATE_LIMIT_RPS":   "2.5",
		"SHUTDOWN_TIMEOUT": "3s",
		"REDIS_ADDR":       "localhost:6379",
	}))

	// assert
	require.NoError(t, err)
	assert.Equal(t, AdapterSQLXDB, cfg.DBAdapter)
	assert.Equal(t, 5, cfg.NotifierWorkers)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.0001)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func Test_AppConfigFrom_RejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"missing jwt secret", map[string]string{}},
		{"unknown adapter", map[string]string{"JWT_SECRET": "s", "DB_ADAPTER": "mysql"}},
		{"zero workers", map[string]string{"JWT_SECRET": "s", "NOTIFIER_WORKERS": "0"}},
		{"non numeric burst", map[string]string{"JWT_SECRET": "s", "RATE_LIMIT_BURST": "many"}},
		{"negative rps", map[string]string{"JWT_SECRET": "s", "RATE_LIMIT_RPS": "-1"}},
		{"bad shutdown timeout", map[string]string{"JWT_SECRET": "s", "SHUTDOWN_TIMEOUT": "soon"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			_, err := appConfigFrom(envFrom(tc.env))

			// assert
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func Test_PostgresPGXPoolConfig_AppliesPoolSettings(t *testing.T) {
	// act
	poolConfig, err := PostgresPGXPoolConfig(defaultDatabaseURL)

	// assert
	require.NoError(t, err)
	assert.Equal(t, defaultMaxConnections, poolConfig.MaxConns)
	assert.Equal(t, defaultMinConnections, poolConfig.MinConns)
	assert.Equal(t, defaultConnectTimeout, poolConfig.ConnConfig.ConnectTimeout)
}
