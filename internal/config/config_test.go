package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/AgentTarik/gosat-api/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7001", cfg.ListenAddr)
	assert.Equal(t, gateway.DefaultTimeout, cfg.Partners.Timeout)
	assert.False(t, cfg.Partners.AllowUnregistered)
	assert.True(t, cfg.CPF.AllowTestValues)
	assert.True(t, cfg.Rate.Enabled)
	assert.Equal(t, 10.0, cfg.Rate.RPS)
	assert.Equal(t, 20, cfg.Rate.Burst)
	assert.Equal(t, 100, cfg.Kafka.QueueSize)
	assert.False(t, cfg.Kafka.Enabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("API_CONSULTA_CPF", "http://partner.local/cpf")
	t.Setenv("API_CONSULTA_OFERTA", "http://partner.local/oferta")
	t.Setenv("ALLOW_NOT_REGISTERED_REQUESTS", "true")
	t.Setenv("OUTBOUND_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CPF_ALLOW_TEST_VALUES", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://partner.local/cpf", cfg.Partners.Destinations[gateway.CPFLookup])
	assert.Equal(t, "http://partner.local/oferta", cfg.Partners.Destinations[gateway.OfferLookup])
	assert.True(t, cfg.Partners.AllowUnregistered)
	assert.Equal(t, 3*time.Second, cfg.Partners.Timeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.CPF.AllowTestValues)
	assert.Empty(t, cfg.MissingDestinations())
}

func TestLoad_MissingDestinationsAreNotFatal(t *testing.T) {
	t.Setenv("API_CONSULTA_CPF", "")
	t.Setenv("API_CONSULTA_OFERTA", "http://partner.local/oferta")

	cfg, err := Load()
	require.NoError(t, err)

	_, ok := cfg.Partners.Destinations[gateway.CPFLookup]
	assert.False(t, ok)
	assert.Equal(t, []gateway.Target{gateway.CPFLookup}, cfg.MissingDestinations())
}

func TestLoad_StrictDestinations(t *testing.T) {
	t.Setenv("STRICT_DESTINATIONS", "true")
	t.Setenv("API_CONSULTA_CPF", "http://partner.local/cpf")
	t.Setenv("API_CONSULTA_OFERTA", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_CONSULTA_OFERTA")
	assert.NotContains(t, err.Error(), "API_CONSULTA_CPF")
}

func TestLoad_InvalidRate(t *testing.T) {
	t.Setenv("RATE_RPS", "0")
	t.Setenv("RATE_BURST", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_RPS")
	assert.Contains(t, err.Error(), "RATE_BURST")

	t.Setenv("RATE_ENABLED", "false")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"listen_addr: \":9000\"\napi_consulta_cpf: http://file.local/cpf\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LISTEN_ADDR", ":9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.ListenAddr, "environment wins over file")
	assert.Equal(t, "http://file.local/cpf", cfg.Partners.Destinations[gateway.CPFLookup])
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
