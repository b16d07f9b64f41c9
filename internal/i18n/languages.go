package i18n

import "strings"

// languageNames maps language codes to the English name used when asking the
// generation service to respond in that language.
var languageNames = map[string]string{
	"en-US": "English",
	"en-GB": "English (UK)",
	"es-ES": "Spanish",
	"es-MX": "Mexican Spanish",
	"fr-FR": "French",
	"fr-CA": "Canadian French",
	"de-DE": "German",
	"it-IT": "Italian",
	"pt-BR": "Brazilian Portuguese",
	"pt-PT": "Portuguese",
	"nl-NL": "Dutch",
	"ru-RU": "Russian",
	"ja-JP": "Japanese",
	"ko-KR": "Korean",
	"zh-CN": "Chinese (Simplified)",
	"zh-TW": "Chinese (Traditional)",
	"ar-SA": "Arabic",
	"hi-IN": "Hindi",
	"tr-TR": "Turkish",
	"pl-PL": "Polish",
	"sv-SE": "Swedish",
	"da-DK": "Danish",
	"fi-FI": "Finnish",
	"th-TH": "Thai",
	"vi-VN": "Vietnamese",
	"id-ID": "Indonesian",
}

// languageNameCodes fixes iteration order for the prefix pass.
var languageNameCodes = []string{
	"en-US", "en-GB", "es-ES", "es-MX", "fr-FR", "fr-CA", "de-DE", "it-IT",
	"pt-BR", "pt-PT", "nl-NL", "ru-RU", "ja-JP", "ko-KR", "zh-CN", "zh-TW",
	"ar-SA", "hi-IN", "tr-TR", "pl-PL", "sv-SE", "da-DK", "fi-FI", "th-TH",
	"vi-VN", "id-ID",
}

// LanguageName resolves a code to the English language name used in prompts.
// Same fallback order as Resolve: exact, prefix, English.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	prefix := primarySubtag(code)
	for _, known := range languageNameCodes {
		if primarySubtag(known) == prefix {
			return languageNames[known]
		}
	}
	return "English"
}

// ResponseInstruction builds the response-language directive appended to the
// system prompt. Uppercased per the service prompt conventions so the model
// treats it as a hard requirement.
func ResponseInstruction(code string) string {
	name := LanguageName(code)
	return "RESPOND IN " + strings.ToUpper(name) + ". Provide all descriptions in " + name + "."
}
