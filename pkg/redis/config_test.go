package redis

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	config := NewConfig()

	assert.Equal(t, "localhost:6379", config.Addr)
	assert.Equal(t, "", config.Password)
	assert.Equal(t, 0, config.DB)
	assert.Equal(t, 10, config.PoolSize)
	assert.Equal(t, 2, config.MinIdleConn)
	assert.Equal(t, 3, config.MaxRetries)
	assert.Equal(t, 1*time.Second, config.RetryInterval)
}

func TestGetConfig_Defaults(t *testing.T) {
	envVars := []string{
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"REDIS_POOL_SIZE", "REDIS_MIN_IDLE_CONN",
		"REDIS_MAX_RETRIES", "REDIS_RETRY_INTERVAL",
	}
	for _, env := range envVars {
		os.Unsetenv(env)
	}

	config := GetConfig()

	assert.Equal(t, "localhost:6379", config.Addr)
	assert.Equal(t, "", config.Password)
	assert.Equal(t, 0, config.DB)
	assert.Equal(t, 10, config.PoolSize)
	assert.Equal(t, 2, config.MinIdleConn)
	assert.Equal(t, 3, config.MaxRetries)
	assert.Equal(t, 1*time.Second, config.RetryInterval)
}

func TestGetConfig_EnvOverrides(t *testing.T) {
	os.Setenv("REDIS_ADDR", "redis.example.com:6380")
	os.Setenv("REDIS_PASSWORD", "secret")
	os.Setenv("REDIS_DB", "2")
	os.Setenv("REDIS_POOL_SIZE", "20")
	os.Setenv("REDIS_MIN_IDLE_CONN", "8")
	os.Setenv("REDIS_MAX_RETRIES", "5")
	os.Setenv("REDIS_RETRY_INTERVAL", "10s")
	defer func() {
		os.Unsetenv("REDIS_ADDR")
		os.Unsetenv("REDIS_PASSWORD")
		os.Unsetenv("REDIS_DB")
		os.Unsetenv("REDIS_POOL_SIZE")
		os.Unsetenv("REDIS_MIN_IDLE_CONN")
		os.Unsetenv("REDIS_MAX_RETRIES")
		os.Unsetenv("REDIS_RETRY_INTERVAL")
	}()

	config := GetConfig()

	assert.Equal(t, "redis.example.com:6380", config.Addr)
	assert.Equal(t, "secret", config.Password)
	assert.Equal(t, 2, config.DB)
	assert.Equal(t, 20, config.PoolSize)
	assert.Equal(t, 8, config.MinIdleConn)
	assert.Equal(t, 5, config.MaxRetries)
	assert.Equal(t, 10*time.Second, config.RetryInterval)
}

func TestGetConfig_InvalidValues(t *testing.T) {
	os.Setenv("REDIS_DB", "not-a-number")
	os.Setenv("REDIS_POOL_SIZE", "abc")
	os.Setenv("REDIS_RETRY_INTERVAL", "bogus")
	defer func() {
		os.Unsetenv("REDIS_DB")
		os.Unsetenv("REDIS_POOL_SIZE")
		os.Unsetenv("REDIS_RETRY_INTERVAL")
	}()

	config := GetConfig()

	// Некорректные значения игнорируются, остаются значения по умолчанию
	assert.Equal(t, 0, config.DB)
	assert.Equal(t, 10, config.PoolSize)
	assert.Equal(t, 1*time.Second, config.RetryInterval)
}
