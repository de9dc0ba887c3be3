package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("STUDIO_JWT_SECRET", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_DefaultsAndPortPrefix(t *testing.T) {
	t.Setenv("STUDIO_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "studio_booking", cfg.DBConfig.DBName)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaConfig.Brokers)
}

func TestLoad_ExplicitValues(t *testing.T) {
	t.Setenv("STUDIO_JWT_SECRET", "test-secret")
	t.Setenv("STUDIO_SERVICE_PORT", ":9000")
	t.Setenv("STUDIO_KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("STUDIO_DB_PORT", "5433")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaConfig.Brokers)
	assert.Equal(t, 5433, cfg.DBConfig.Port)
	assert.Contains(t, cfg.DBConfig.DatabaseURL(), ":5433/")
}
