package integrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bus-admin/internal/integrations/email"
	"bus-admin/pkg/config"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	_, err := r.GetActive()
	assert.Error(t, err)

	require.NoError(t, r.Register(email.NewNoopSender(zap.NewNop())))
	assert.Error(t, r.Register(email.NewNoopSender(zap.NewNop())), "duplicate names are rejected")
	assert.Error(t, r.SetActive("resend"))

	require.NoError(t, r.SetActive("noop"))
	active, err := r.GetActive()
	require.NoError(t, err)
	assert.Equal(t, "noop", active.Name())
}

func TestNewEmailRegistryFallsBackToNoop(t *testing.T) {
	r, err := NewEmailRegistry(config.EmailConfig{Provider: "resend"}, zap.NewNop())
	require.NoError(t, err)
	active, err := r.GetActive()
	require.NoError(t, err)
	assert.Equal(t, "noop", active.Name())

	r, err = NewEmailRegistry(config.EmailConfig{Provider: "resend", ResendAPIKey: "re_x", From: "a@example.com"}, zap.NewNop())
	require.NoError(t, err)
	active, err = r.GetActive()
	require.NoError(t, err)
	assert.Equal(t, "resend", active.Name())
}
