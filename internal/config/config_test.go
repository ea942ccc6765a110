package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"DefaultPort", config.DefaultPort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestUserMessages_Exact pins the user-facing strings; they are part of the output contract.
func TestUserMessages_Exact(t *testing.T) {
	assert.Equal(t, "Please select your birth date", config.MsgSelectBirthDate)
	assert.Equal(t, "Birth date cannot be in the future", config.MsgFutureBirthDate)
	assert.Equal(t, 999, config.GroupingThreshold)
	assert.Equal(t, 86400, config.SecondsPerDay)
}

func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Age/"), "UserAgent must start with AppName/")
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second)
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute)
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second)

	// A vCard with a single contact is a few KB; photos can push it to a few MB.
	assert.GreaterOrEqual(t, int64(config.MaxHTTPResponseSize), int64(1024*1024))
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(256*1024*1024))
}

// -----------------------------------------------------------------------------
// Settings
// -----------------------------------------------------------------------------

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := config.LoadSettings("go-age", nil)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultPort, s.Port)
	assert.Equal(t, config.LocalhostBindAddr, s.BindAddr)
	assert.Equal(t, config.DefaultLanguage, s.Language)
	assert.False(t, s.Serve)
	assert.False(t, s.OneShot())
	assert.Equal(t, config.ModeDesktop, s.Mode())
}

// Variables left unset keep the package defaults.
func TestLoadSettings_UnsetKeepsDefaults(t *testing.T) {
	t.Setenv("GOAGE_LANGUAGE", "de")

	s, err := config.LoadSettings("go-age", nil)
	require.NoError(t, err)

	assert.Equal(t, "de", s.Language)
	assert.Equal(t, config.DefaultPort, s.Port)
	assert.Equal(t, config.LocalhostBindAddr, s.BindAddr)
}

func TestLoadSettings_Environment(t *testing.T) {
	t.Setenv("GOAGE_PORT", "9000")
	t.Setenv("GOAGE_LANGUAGE", "fr")
	t.Setenv("GOAGE_SERVE", "true")

	s, err := config.LoadSettings("go-age", nil)
	require.NoError(t, err)

	assert.Equal(t, "9000", s.Port)
	assert.Equal(t, "fr", s.Language)
	assert.True(t, s.Serve)
	assert.Equal(t, config.ModeServe, s.Mode())
}

func TestLoadSettings_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("GOAGE_PORT", "9000")

	s, err := config.LoadSettings("go-age", []string{"-port", "9100", "-birth", "2000-01-15"})
	require.NoError(t, err)

	assert.Equal(t, "9100", s.Port)
	assert.Equal(t, "2000-01-15", s.Birth)
	assert.True(t, s.OneShot())
	assert.Equal(t, config.ModeOneShot, s.Mode())
}

func TestLoadSettings_Errors(t *testing.T) {
	t.Run("BadEnvironmentBool", func(t *testing.T) {
		t.Setenv("GOAGE_SERVE", "maybe")
		_, err := config.LoadSettings("go-age", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrSettingsEnv)
	})

	t.Run("UnknownFlag", func(t *testing.T) {
		_, err := config.LoadSettings("go-age", []string{"-nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), config.ErrSettingsFlags)
	})
}
