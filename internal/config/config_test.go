package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
api:
  port: "9090"
  jwt_signing_key: secret
  allowed_cors_domains:
    - http://localhost:3000
checkin:
  daily_limit: 10
  warning_threshold: 8
  quota_scope: stand
storage:
  backend: local
  local_path: /tmp/firewood
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "debug", conf.Gin.Mode)

	settings := conf.CheckIn.Snapshot()
	assert.Equal(t, 10, settings.DailyLimit)
	assert.Equal(t, "stand", settings.QuotaScope)
	assert.Equal(t, 10, settings.RecentVerifiers)

	assert.Equal(t, 1200, conf.Photos.MaxEdge)
	assert.Equal(t, 40_000_000, conf.Photos.MaxPixels)
	assert.Equal(t, int64(2<<20), conf.Photos.CheckInMaxBytes)
	assert.Equal(t, "firewood", conf.NATS.SubjectPrefix)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FIREWOOD_API_PORT", "7070")
	t.Setenv("FIREWOOD_CHECKIN_DAILY_LIMIT", "12")

	conf, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "7070", conf.API.Port)
	assert.Equal(t, 12, conf.CheckIn.Snapshot().DailyLimit)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{
			name: "missing signing key",
			body: "api:\n  port: \"1\"\n",
			want: errMissingJWTSigningKey,
		},
		{
			name: "bad scope",
			body: "api:\n  jwt_signing_key: k\ncheckin:\n  quota_scope: county\n",
			want: errInvalidQuotaScope,
		},
		{
			name: "warning above limit",
			body: "api:\n  jwt_signing_key: k\ncheckin:\n  daily_limit: 5\n  warning_threshold: 8\n",
			want: errInvalidQuotaLimits,
		},
		{
			name: "unknown storage",
			body: "api:\n  jwt_signing_key: k\nstorage:\n  backend: ftp\n",
			want: errUnknownStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
