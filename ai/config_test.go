package ai

import (
	"testing"

	"github.com/IliasHad/edit-mind-sub003/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, cfg.Validate())

	for _, m := range core.Modalities {
		assert.NotEmpty(t, cfg.EmbeddingModels[m], "default model for %s", m)
	}
}

func TestConfig_Normalize(t *testing.T) {
	cfg := NewConfig(WithHost("http://localhost:9100"))
	cfg.Normalize()

	assert.Equal(t, "http://localhost:9100/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:9100/v1", cfg.ChatHost)

	// Trailing slash is stripped before the suffix is added.
	cfg = NewConfig(WithEmbeddingHost("http://localhost:9100/"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:9100/v1", cfg.EmbeddingHost)

	// Already-normalized hosts are untouched.
	cfg = NewConfig(WithChatHost("http://localhost:9100/v1"))
	cfg.Normalize()
	assert.Equal(t, "http://localhost:9100/v1", cfg.ChatHost)
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewConfig()
	cfg.EmbeddingModels[core.ModalityVisual] = ""
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithChatModel(""))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(
		WithHost("http://localhost:11434"),
		WithEmbeddingModel(core.ModalityText, "text-embedding-3-small"),
	)
	assert.NoError(t, cfg.Validate())
}

func TestPermanentError(t *testing.T) {
	base := assert.AnError
	err := Permanent(base)

	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, base)
	assert.False(t, IsPermanent(base))
	assert.Nil(t, Permanent(nil))
}
