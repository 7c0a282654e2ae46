package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"JWT_SECRET": "secret",
		"AUTH_URL":   "http://auth:4000/",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "marketplace", cfg.DBName)
	assert.Equal(t, "http://auth:4000", cfg.AuthURL)
	assert.Equal(t, 10*time.Second, cfg.AuthTimeout)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.MongoTransactions)
	assert.True(t, cfg.NotificationsRequireLogin)
	assert.Equal(t, "@hourly", cfg.CleanupSchedule)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, StoreMongo, cfg.Store)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"JWT_SECRET":                  "secret",
		"AUTH_URL":                    "http://auth",
		"AUTH_TIMEOUT":                "2s",
		"NOTIFICATIONS_REQUIRE_LOGIN": "false",
		"ALLOWED_ORIGINS":             "https://a.example, https://b.example",
		"STORE":                       "Memory",
	}))
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.AuthTimeout)
	assert.False(t, cfg.NotificationsRequireLogin)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, StoreMemory, cfg.Store)
}

func TestFromEnvRejects(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{"JWT_SECRET": "secret", "AUTH_URL": "http://auth"}
	}

	cases := map[string]func(map[string]string){
		"missing secret":   func(m map[string]string) { delete(m, "JWT_SECRET") },
		"missing auth url": func(m map[string]string) { delete(m, "AUTH_URL") },
		"bad duration":     func(m map[string]string) { m["REQUEST_TIMEOUT"] = "soon" },
		"bad bool":         func(m map[string]string) { m["MONGO_TRANSACTIONS"] = "maybe" },
		"unknown store":    func(m map[string]string) { m["STORE"] = "redis" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			vars := base()
			mutate(vars)
			_, err := FromEnv(env(vars))
			assert.Error(t, err)
		})
	}
}
