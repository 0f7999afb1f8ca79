package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, DefaultTimeout, config.Timeout)
	assert.InDelta(t, 0.1, config.Temperature, 1e-6)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier falls back to standard, then lite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", config.GetModel(TierLite))
}

func TestWithModel(t *testing.T) {
	base := DefaultConfig()
	custom := base.WithModel(TierStandard, "gemini-2.0-flash")

	assert.Equal(t, "gemini-2.0-flash", custom.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash", base.GetModel(TierStandard), "original must not change")
	assert.Equal(t, base.Timeout, custom.Timeout)
	assert.Equal(t, base.GetModel(TierLite), custom.GetModel(TierLite))
}

func TestWithModel_NilModels(t *testing.T) {
	custom := (&Config{Provider: ProviderGemini}).WithModel(TierLite, "gemini-2.5-flash-lite")
	assert.Equal(t, "gemini-2.5-flash-lite", custom.GetModel(TierStandard), "standard falls back to lite")
}
