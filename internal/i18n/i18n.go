// Package i18n holds the UI/voice translation tables and the language
// resolution rules. Lookup never fails: an unknown code falls back to the
// closest language sharing its primary subtag, and finally to English.
package i18n

import "strings"

// DefaultLanguage is used whenever no better match exists.
const DefaultLanguage = "en-US"

// Translations is the set of localized strings for one language.
type Translations struct {
	Tagline               string
	LanguageLabel         string
	CaptureButton         string
	RepeatButton          string
	ReadTextButton        string
	Placeholder           string
	InitializingCamera    string
	CameraReady           string
	CameraReadyShort      string
	Capturing             string
	Analyzing             string
	AnalyzingShort        string
	GeneratingDescription string
	DescriptionReady      string
	Welcome               string
	CameraError           string
	CaptureError          string
	ProcessingError       string
	TimeoutError          string
	NoTextDetected        string
	LanguageSelected      string
}

// Resolve returns the translation set for a language code. Exact match wins,
// then the first catalog entry sharing the code's primary subtag, then
// English. Absence of a match is a defined fallback path, not an error.
func Resolve(code string) Translations {
	if t, ok := catalog[code]; ok {
		return t
	}
	prefix := primarySubtag(code)
	for _, known := range codes {
		if primarySubtag(known) == prefix {
			return catalog[known]
		}
	}
	return catalog[DefaultLanguage]
}

// Supported reports whether the catalog can serve the code, directly or via
// prefix fallback.
func Supported(code string) bool {
	if _, ok := catalog[code]; ok {
		return true
	}
	prefix := primarySubtag(code)
	for _, known := range codes {
		if primarySubtag(known) == prefix {
			return true
		}
	}
	return false
}

// Codes returns the language codes with a full translation set, in stable
// order.
func Codes() []string {
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

func primarySubtag(code string) string {
	if i := strings.IndexByte(code, '-'); i > 0 {
		return code[:i]
	}
	return code
}

// codes fixes the catalog iteration order so prefix fallback is
// deterministic.
var codes = []string{
	"en-US",
	"es-ES",
	"es-MX",
	"fr-FR",
	"de-DE",
	"pt-BR",
	"ja-JP",
	"zh-CN",
}

var catalog = map[string]Translations{
	"en-US": {
		Tagline:               "Universal AI Assistant for LA 2028",
		LanguageLabel:         "Select Your Language",
		CaptureButton:         "TAP ANYWHERE TO CAPTURE",
		RepeatButton:          "Repeat",
		ReadTextButton:        "Read Text",
		Placeholder:           "Tap anywhere to get instant AI descriptions in any language",
		InitializingCamera:    "Initializing camera...",
		CameraReady:           "Camera ready! Tap \"Capture Scene\" to begin.",
		CameraReadyShort:      "Camera ready. Tap anywhere to describe what you see.",
		Capturing:             "Capturing scene...",
		Analyzing:             "Analyzing scene...",
		AnalyzingShort:        "Analyzing...",
		GeneratingDescription: "Generating description...",
		DescriptionReady:      "Description ready",
		Welcome:               "Welcome to Buddy Vision - Your universal AI assistant for LA 2028. Tap anywhere on screen to get instant descriptions of signs, scenes, and surroundings. Works in any language.",
		CameraError:           "Camera access denied or unavailable. Please check permissions.",
		CaptureError:          "Failed to capture image",
		ProcessingError:       "Error occurred. Please try again.",
		TimeoutError:          "Request timed out. Please try again.",
		NoTextDetected:        "No readable text detected in the last capture.",
		LanguageSelected:      "English selected",
	},
	"es-ES": {
		Tagline:               "Asistente AI Universal para LA 2028",
		LanguageLabel:         "Selecciona tu idioma",
		CaptureButton:         "TOCA EN CUALQUIER LUGAR PARA CAPTURAR",
		RepeatButton:          "Repetir",
		ReadTextButton:        "Leer Texto",
		Placeholder:           "Toca en cualquier lugar para obtener descripciones instantáneas en cualquier idioma",
		InitializingCamera:    "Inicializando cámara...",
		CameraReady:           "Cámara lista. Toca \"Capturar Escena\" para comenzar.",
		CameraReadyShort:      "Cámara lista. Toca en cualquier lugar para describir lo que ves.",
		Capturing:             "Capturando escena...",
		Analyzing:             "Analizando escena...",
		AnalyzingShort:        "Analizando...",
		GeneratingDescription: "Generando descripción...",
		DescriptionReady:      "Descripción lista",
		Welcome:               "Bienvenido a Buddy Vision - Tu asistente AI universal para LA 2028. Toca en cualquier lugar de la pantalla para obtener descripciones instantáneas de señales, escenas y entornos. Funciona en cualquier idioma.",
		CameraError:           "Acceso a la cámara denegado o no disponible. Por favor verifica los permisos.",
		CaptureError:          "Error al capturar imagen",
		ProcessingError:       "Ocurrió un error. Por favor intenta de nuevo.",
		TimeoutError:          "La solicitud expiró. Por favor intenta de nuevo.",
		NoTextDetected:        "No se detectó texto legible en la última captura.",
		LanguageSelected:      "Español seleccionado",
	},
	"es-MX": {
		Tagline:               "Asistente AI Universal para LA 2028",
		LanguageLabel:         "Selecciona tu idioma",
		CaptureButton:         "TOCA EN CUALQUIER LUGAR PARA CAPTURAR",
		RepeatButton:          "Repetir",
		ReadTextButton:        "Leer Texto",
		Placeholder:           "Toca en cualquier lugar para obtener descripciones instantáneas en cualquier idioma",
		InitializingCamera:    "Inicializando cámara...",
		CameraReady:           "Cámara lista. Toca \"Capturar Escena\" para comenzar.",
		CameraReadyShort:      "Cámara lista. Toca en cualquier lugar para describir lo que ves.",
		Capturing:             "Capturando escena...",
		Analyzing:             "Analizando escena...",
		AnalyzingShort:        "Analizando...",
		GeneratingDescription: "Generando descripción...",
		DescriptionReady:      "Descripción lista",
		Welcome:               "Bienvenido a Buddy Vision - Tu asistente AI universal para LA 2028. Toca en cualquier lugar de la pantalla para obtener descripciones instantáneas de señales, escenas y entornos. Funciona en cualquier idioma.",
		CameraError:           "Acceso a la cámara denegado o no disponible. Por favor verifica los permisos.",
		CaptureError:          "Error al capturar imagen",
		ProcessingError:       "Ocurrió un error. Por favor intenta de nuevo.",
		TimeoutError:          "La solicitud expiró. Por favor intenta de nuevo.",
		NoTextDetected:        "No se detectó texto legible en la última captura.",
		LanguageSelected:      "Español seleccionado",
	},
	"fr-FR": {
		Tagline:               "Assistant IA Universel pour LA 2028",
		LanguageLabel:         "Choisissez votre langue",
		CaptureButton:         "TOUCHEZ N'IMPORTE OÙ POUR CAPTURER",
		RepeatButton:          "Répéter",
		ReadTextButton:        "Lire le texte",
		Placeholder:           "Touchez n'importe où pour obtenir des descriptions instantanées dans n'importe quelle langue",
		InitializingCamera:    "Initialisation de la caméra...",
		CameraReady:           "Caméra prête. Touchez \"Capturer la scène\" pour commencer.",
		CameraReadyShort:      "Caméra prête. Touchez n'importe où pour décrire ce que vous voyez.",
		Capturing:             "Capture de la scène...",
		Analyzing:             "Analyse de la scène...",
		AnalyzingShort:        "Analyse...",
		GeneratingDescription: "Génération de la description...",
		DescriptionReady:      "Description prête",
		Welcome:               "Bienvenue sur Buddy Vision - Votre assistant IA universel pour LA 2028. Touchez n'importe où sur l'écran pour obtenir des descriptions instantanées des panneaux, des scènes et des environs. Fonctionne dans toutes les langues.",
		CameraError:           "Accès à la caméra refusé ou indisponible. Veuillez vérifier les autorisations.",
		CaptureError:          "Échec de la capture d'image",
		ProcessingError:       "Une erreur s'est produite. Veuillez réessayer.",
		TimeoutError:          "La demande a expiré. Veuillez réessayer.",
		NoTextDetected:        "Aucun texte lisible détecté dans la dernière capture.",
		LanguageSelected:      "Français sélectionné",
	},
	"de-DE": {
		Tagline:               "Universeller KI-Assistent für LA 2028",
		LanguageLabel:         "Wähle deine Sprache",
		CaptureButton:         "TIPPE IRGENDWO ZUM AUFNEHMEN",
		RepeatButton:          "Wiederholen",
		ReadTextButton:        "Text vorlesen",
		Placeholder:           "Tippe irgendwo, um sofortige KI-Beschreibungen in jeder Sprache zu erhalten",
		InitializingCamera:    "Kamera wird initialisiert...",
		CameraReady:           "Kamera bereit. Tippe auf \"Szene aufnehmen\", um zu beginnen.",
		CameraReadyShort:      "Kamera bereit. Tippe irgendwo, um zu beschreiben, was du siehst.",
		Capturing:             "Szene wird aufgenommen...",
		Analyzing:             "Szene wird analysiert...",
		AnalyzingShort:        "Analysiere...",
		GeneratingDescription: "Beschreibung wird erstellt...",
		DescriptionReady:      "Beschreibung bereit",
		Welcome:               "Willkommen bei Buddy Vision - Dein universeller KI-Assistent für LA 2028. Tippe irgendwo auf den Bildschirm, um sofortige Beschreibungen von Schildern, Szenen und der Umgebung zu erhalten. Funktioniert in jeder Sprache.",
		CameraError:           "Kamerazugriff verweigert oder nicht verfügbar. Bitte Berechtigungen prüfen.",
		CaptureError:          "Bildaufnahme fehlgeschlagen",
		ProcessingError:       "Ein Fehler ist aufgetreten. Bitte versuche es erneut.",
		TimeoutError:          "Zeitüberschreitung der Anfrage. Bitte versuche es erneut.",
		NoTextDetected:        "Kein lesbarer Text in der letzten Aufnahme erkannt.",
		LanguageSelected:      "Deutsch ausgewählt",
	},
	"pt-BR": {
		Tagline:               "Assistente de IA Universal para LA 2028",
		LanguageLabel:         "Selecione seu idioma",
		CaptureButton:         "TOQUE EM QUALQUER LUGAR PARA CAPTURAR",
		RepeatButton:          "Repetir",
		ReadTextButton:        "Ler Texto",
		Placeholder:           "Toque em qualquer lugar para obter descrições instantâneas em qualquer idioma",
		InitializingCamera:    "Inicializando câmera...",
		CameraReady:           "Câmera pronta. Toque em \"Capturar Cena\" para começar.",
		CameraReadyShort:      "Câmera pronta. Toque em qualquer lugar para descrever o que você vê.",
		Capturing:             "Capturando cena...",
		Analyzing:             "Analisando cena...",
		AnalyzingShort:        "Analisando...",
		GeneratingDescription: "Gerando descrição...",
		DescriptionReady:      "Descrição pronta",
		Welcome:               "Bem-vindo ao Buddy Vision - Seu assistente de IA universal para LA 2028. Toque em qualquer lugar da tela para obter descrições instantâneas de placas, cenas e arredores. Funciona em qualquer idioma.",
		CameraError:           "Acesso à câmera negado ou indisponível. Verifique as permissões.",
		CaptureError:          "Falha ao capturar imagem",
		ProcessingError:       "Ocorreu um erro. Tente novamente.",
		TimeoutError:          "A solicitação expirou. Tente novamente.",
		NoTextDetected:        "Nenhum texto legível detectado na última captura.",
		LanguageSelected:      "Português selecionado",
	},
	"ja-JP": {
		Tagline:               "LA 2028のためのユニバーサルAIアシスタント",
		LanguageLabel:         "言語を選択してください",
		CaptureButton:         "どこでもタップして撮影",
		RepeatButton:          "もう一度",
		ReadTextButton:        "テキストを読む",
		Placeholder:           "どこでもタップすると、あらゆる言語で即座にAIの説明が得られます",
		InitializingCamera:    "カメラを初期化しています...",
		CameraReady:           "カメラの準備ができました。「シーンを撮影」をタップして開始してください。",
		CameraReadyShort:      "カメラの準備ができました。どこでもタップして見えるものを説明します。",
		Capturing:             "シーンを撮影しています...",
		Analyzing:             "シーンを分析しています...",
		AnalyzingShort:        "分析中...",
		GeneratingDescription: "説明を生成しています...",
		DescriptionReady:      "説明の準備ができました",
		Welcome:               "Buddy Visionへようこそ - LA 2028のためのユニバーサルAIアシスタント。画面のどこでもタップすると、標識、シーン、周囲の即時説明が得られます。あらゆる言語で動作します。",
		CameraError:           "カメラへのアクセスが拒否されたか利用できません。権限を確認してください。",
		CaptureError:          "画像の撮影に失敗しました",
		ProcessingError:       "エラーが発生しました。もう一度お試しください。",
		TimeoutError:          "リクエストがタイムアウトしました。もう一度お試しください。",
		NoTextDetected:        "前回の撮影で読み取れるテキストは検出されませんでした。",
		LanguageSelected:      "日本語が選択されました",
	},
	"zh-CN": {
		Tagline:               "LA 2028通用人工智能助手",
		LanguageLabel:         "选择您的语言",
		CaptureButton:         "点击任意位置拍摄",
		RepeatButton:          "重复",
		ReadTextButton:        "朗读文字",
		Placeholder:           "点击任意位置即可获得任何语言的即时AI描述",
		InitializingCamera:    "正在初始化相机...",
		CameraReady:           "相机已就绪。点击\"拍摄场景\"开始。",
		CameraReadyShort:      "相机已就绪。点击任意位置描述您看到的内容。",
		Capturing:             "正在拍摄场景...",
		Analyzing:             "正在分析场景...",
		AnalyzingShort:        "分析中...",
		GeneratingDescription: "正在生成描述...",
		DescriptionReady:      "描述已就绪",
		Welcome:               "欢迎使用Buddy Vision - 您的LA 2028通用人工智能助手。点击屏幕任意位置即可获得标志、场景和周围环境的即时描述。支持任何语言。",
		CameraError:           "相机访问被拒绝或不可用。请检查权限。",
		CaptureError:          "拍摄图像失败",
		ProcessingError:       "发生错误。请重试。",
		TimeoutError:          "请求超时。请重试。",
		NoTextDetected:        "上次拍摄中未检测到可读文字。",
		LanguageSelected:      "已选择中文",
	},
}
