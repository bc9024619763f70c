package config

import (
	"testing"

	"sla-srv/pkg/encrypter"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySecretsOverridesAndReveals(t *testing.T) {
	key := "0123456789abcdef0123456789abcdef"
	enc, err := encrypter.New(key)
	require.NoError(t, err)
	sealed, err := enc.Seal("smtp-pass")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET_KEY", "from-env-secret-key-that-is-long-enough")
	t.Setenv("SMTP_PASSWORD", sealed)
	t.Setenv("ENCRYPTER_KEY", key)

	cfg := &Config{}
	cfg.JWT.SecretKey = "from-file"
	cfg.Gateway.APIKey = "plain-key"

	require.NoError(t, applySecrets(cfg))
	assert.Equal(t, "from-env-secret-key-that-is-long-enough", cfg.JWT.SecretKey)
	assert.Equal(t, "smtp-pass", cfg.SMTP.Password)
	assert.Equal(t, "plain-key", cfg.Gateway.APIKey)
}

func TestApplySecretsSealedWithoutKey(t *testing.T) {
	t.Setenv("ENCRYPTER_KEY", "")
	cfg := &Config{}
	cfg.Gateway.APIKey = encrypter.SealedPrefix + "abc"

	assert.Error(t, applySecrets(cfg))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.JWT.SecretKey = "0123456789abcdef0123456789abcdef"
		c.Internal.Key = "internal"
		c.Postgres.Host = "db"
		c.Postgres.DBName = "feedback"
		c.Redis.Host = "redis"
		c.Redis.Port = 6379
		c.Escalation.Workers = 2
		c.Notification.Workers = 2
		c.Notification.QueueSize = 10
		return c
	}

	require.NoError(t, validate(valid()))

	short := valid()
	short.JWT.SecretKey = "short"
	assert.Error(t, validate(short))

	noInternal := valid()
	noInternal.Internal.Key = ""
	assert.Error(t, validate(noInternal))

	noWorkers := valid()
	noWorkers.Escalation.Workers = 0
	assert.Error(t, validate(noWorkers))
}

func TestLoadDetectionKeepsZeroThreshold(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()
	viper.Set("detection.medium_threshold", 0)

	d := loadDetection()
	require.NotNil(t, d.MediumThreshold)
	assert.Equal(t, 0.0, *d.MediumThreshold)
	require.NotNil(t, d.CriticalThreshold)
	assert.Equal(t, -0.8, *d.CriticalThreshold)
	assert.Equal(t, 4, d.Workers)
	assert.Equal(t, 256, d.QueueSize)
}

func TestLoadDetectionWithoutDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	d := loadDetection()
	assert.Nil(t, d.CriticalThreshold)
	assert.Nil(t, d.HighThreshold)
	assert.Nil(t, d.MediumThreshold)
}
