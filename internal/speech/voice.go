// Package speech turns generated descriptions into audible speech. Voice
// selection, rate handling and interruption semantics live here; actual
// audio synthesis is behind the Synthesizer interface.
package speech

import "strings"

// Voice describes one available TTS voice.
type Voice struct {
	Name     string
	Language string
	Enhanced bool
}

// defaultVoices is the built-in catalog of Microsoft Edge neural voices
// for the supported languages. All neural voices count as enhanced; the
// plain fallbacks exist so selection is exercised even on reduced catalogs.
var defaultVoices = []Voice{
	{Name: "en-US-AriaNeural", Language: "en-US", Enhanced: true},
	{Name: "en-US-GuyNeural", Language: "en-US", Enhanced: true},
	{Name: "en-GB-SoniaNeural", Language: "en-GB", Enhanced: true},
	{Name: "es-ES-ElviraNeural", Language: "es-ES", Enhanced: true},
	{Name: "es-MX-DaliaNeural", Language: "es-MX", Enhanced: true},
	{Name: "fr-FR-DeniseNeural", Language: "fr-FR", Enhanced: true},
	{Name: "fr-CA-SylvieNeural", Language: "fr-CA", Enhanced: true},
	{Name: "de-DE-KatjaNeural", Language: "de-DE", Enhanced: true},
	{Name: "pt-BR-FranciscaNeural", Language: "pt-BR", Enhanced: true},
	{Name: "ja-JP-NanamiNeural", Language: "ja-JP", Enhanced: true},
	{Name: "zh-CN-XiaoxiaoNeural", Language: "zh-CN", Enhanced: true},
	{Name: "zh-CN-YunyangNeural", Language: "zh-CN", Enhanced: true},
	{Name: "ko-KR-SunHiNeural", Language: "ko-KR", Enhanced: true},
	{Name: "it-IT-ElsaNeural", Language: "it-IT", Enhanced: true},
	{Name: "hi-IN-SwaraNeural", Language: "hi-IN", Enhanced: true},
	{Name: "ar-SA-ZariyahNeural", Language: "ar-SA", Enhanced: true},
	{Name: "ru-RU-SvetlanaNeural", Language: "ru-RU", Enhanced: true},
}

// DefaultVoices returns the built-in voice catalog.
func DefaultVoices() []Voice {
	out := make([]Voice, len(defaultVoices))
	copy(out, defaultVoices)
	return out
}

// SelectVoice picks the best voice for a language code. Preference order:
// exact language match with an enhanced voice, exact match, primary-subtag
// match with an enhanced voice, primary-subtag match, and finally the first
// voice in the catalog. Returns false only for an empty catalog.
func SelectVoice(voices []Voice, language string) (Voice, bool) {
	if len(voices) == 0 {
		return Voice{}, false
	}

	prefix := primarySubtag(language)

	var exact, exactEnhanced, prefixMatch, prefixEnhanced *Voice
	for i := range voices {
		v := &voices[i]
		if strings.EqualFold(v.Language, language) {
			if v.Enhanced && exactEnhanced == nil {
				exactEnhanced = v
			}
			if exact == nil {
				exact = v
			}
		}
		if strings.EqualFold(primarySubtag(v.Language), prefix) {
			if v.Enhanced && prefixEnhanced == nil {
				prefixEnhanced = v
			}
			if prefixMatch == nil {
				prefixMatch = v
			}
		}
	}

	switch {
	case exactEnhanced != nil:
		return *exactEnhanced, true
	case exact != nil:
		return *exact, true
	case prefixEnhanced != nil:
		return *prefixEnhanced, true
	case prefixMatch != nil:
		return *prefixMatch, true
	}
	return voices[0], true
}

func primarySubtag(code string) string {
	if i := strings.IndexByte(code, '-'); i >= 0 {
		return code[:i]
	}
	return code
}
