package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectVoice(t *testing.T) {
	catalog := []Voice{
		{Name: "en-US-Plain", Language: "en-US"},
		{Name: "en-US-AriaNeural", Language: "en-US", Enhanced: true},
		{Name: "en-GB-SoniaNeural", Language: "en-GB", Enhanced: true},
		{Name: "fr-FR-Plain", Language: "fr-FR"},
		{Name: "de-DE-KatjaNeural", Language: "de-DE", Enhanced: true},
	}

	tests := []struct {
		name     string
		language string
		want     string
	}{
		{"exact enhanced wins over exact plain", "en-US", "en-US-AriaNeural"},
		{"exact plain when no enhanced", "fr-FR", "fr-FR-Plain"},
		{"prefix enhanced for unknown region", "en-AU", "en-US-AriaNeural"},
		{"prefix plain when only plain matches", "fr-CA", "fr-FR-Plain"},
		{"first voice when nothing matches", "ja-JP", "en-US-Plain"},
		{"case insensitive match", "DE-de", "de-DE-KatjaNeural"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			voice, ok := SelectVoice(catalog, tt.language)
			assert.True(t, ok)
			assert.Equal(t, tt.want, voice.Name)
		})
	}

	t.Run("empty catalog", func(t *testing.T) {
		_, ok := SelectVoice(nil, "en-US")
		assert.False(t, ok)
	})
}

func TestDefaultVoicesCoverSupportedLanguages(t *testing.T) {
	for _, lang := range []string{"en-US", "es-ES", "es-MX", "fr-FR", "de-DE", "pt-BR", "ja-JP", "zh-CN"} {
		voice, ok := SelectVoice(DefaultVoices(), lang)
		assert.True(t, ok)
		assert.Equal(t, lang, voice.Language, "expected exact voice for %s", lang)
		assert.True(t, voice.Enhanced)
	}
}
