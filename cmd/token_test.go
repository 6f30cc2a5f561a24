package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/killallgit/waveform-comments/internal/services/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCommand(t *testing.T) {
	t.Setenv("KILLALL_DATABASE_PATH", filepath.Join(t.TempDir(), "comments.db"))

	out, err := execute(t, "token", "alex")
	require.NoError(t, err)
	token := strings.TrimSpace(out)
	require.NotEmpty(t, token)

	cfg, err := loadConfig()
	require.NoError(t, err)
	tokens, err := auth.NewService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alex", claims.Name)
	assert.NotZero(t, claims.UserID)

	// the same name maps to the same user
	out, err = execute(t, "token", "alex")
	require.NoError(t, err)
	again, err := tokens.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, again.UserID)
}
