package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/raine/buddy-vision/config"
	"github.com/raine/buddy-vision/internal/camera"
	"github.com/raine/buddy-vision/internal/llm"
	"github.com/raine/buddy-vision/internal/pipeline"
	"github.com/raine/buddy-vision/internal/server"
	"github.com/raine/buddy-vision/internal/speech"
	"github.com/raine/buddy-vision/internal/storage"
	"github.com/raine/buddy-vision/internal/vision"
)

const logFileName = "buddy-vision.log"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	config.LoadEnvFile()

	// JOURNAL_STREAM is set by systemd when running as a service; journald
	// handles persistence there, so skip the log file.
	if _, underSystemd := os.LookupEnv("JOURNAL_STREAM"); underSystemd {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open log file")
		}
		defer logFile.Close()

		consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
		fileWriter := zerolog.ConsoleWriter{Out: logFile, NoColor: true}
		log.Logger = log.Output(io.MultiWriter(consoleWriter, fileWriter))

		log.Info().Str("logFile", logFileName).Msg("logging to file")
	}

	dbPath := os.Getenv("BUDDY_VISION_DB_PATH")
	if dbPath == "" {
		dbPath = "buddy-vision.db"
	}
	storeKey := os.Getenv("BUDDY_VISION_STORE_KEY")
	if storeKey == "" {
		storeKey = "buddy-vision-local"
	}

	store, err := storage.NewSQLiteStore(dbPath, storage.DeriveKey(storeKey))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize preference store")
	}
	defer store.Close()
	log.Info().Str("dbPath", dbPath).Msg("preference store initialized")

	// API keys come from the environment and are persisted encrypted, so
	// later runs work from the store alone.
	keys := map[string]string{}
	for _, name := range []string{"GOOGLE_VISION_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY"} {
		keys[name] = config.ResolveCredential(store, name)
	}
	if missing := config.Required(func(name string) string { return keys[name] }); len(missing) > 0 {
		log.Fatal().Msgf("missing required config: %s", strings.Join(missing, ", "))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	analyzer := vision.NewClient(vision.ClientOpts{
		APIKey: keys["GOOGLE_VISION_API_KEY"],
	})

	var generator llm.Generator
	var explorer server.Explorer
	if key := keys["OPENAI_API_KEY"]; key != "" {
		g := llm.NewOpenAIGenerator(llm.OpenAIOpts{APIKey: key})
		generator = g
		explorer = g
	}
	// Gemini takes precedence for descriptions when its key is present;
	// exploration stays on OpenAI, which is the only provider for it.
	if key := keys["GEMINI_API_KEY"]; key != "" {
		g, err := llm.NewGeminiGenerator(ctx, llm.GeminiOpts{APIKey: key})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create gemini generator")
		}
		generator = g
		log.Info().Msg("using gemini for descriptions")
	}

	speaker := speech.NewSpeaker(speech.NewEdgeSynthesizer(), audioSink())

	// The camera is optional: browser clients post their own frames to
	// the analyze endpoint.
	var source camera.Source
	if webcam, err := camera.OpenWebcam(0); err != nil {
		log.Warn().Err(err).Msg("camera unavailable, serving browser captures only")
	} else {
		source = webcam
		defer webcam.Close()
		log.Info().Msg("camera opened")
	}

	status := server.NewStatusBoard()

	p := pipeline.New(pipeline.Deps{
		Camera:    source,
		Analyzer:  analyzer,
		Generator: generator,
		Voice:     speaker,
		Listener:  status,
		Feedback:  pipeline.LogFeedback{},
		Prefs:     store,
	})

	// Restore persisted language and settings before anything speaks.
	language, err := store.Language()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load language")
		language = "en-US"
	}
	settings, err := store.Settings()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load settings")
		settings = llm.DefaultSettings()
	}
	p.Restore(language, settings)

	addr := os.Getenv("BUDDY_VISION_ADDR")
	if addr == "" {
		addr = ":8090"
	}

	srv := server.New(server.Options{
		Pipeline:   p,
		Analyzer:   analyzer,
		Generator:  generator,
		Explorer:   explorer,
		History:    store,
		Partners:   store,
		Status:     status,
		StaticRoot: os.Getenv("BUDDY_VISION_STATIC_ROOT"),
		Debug:      os.Getenv("BUDDY_VISION_DEBUG") != "",
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(ctx, addr)
	})

	g.Go(func() error {
		if err := p.Welcome(ctx); err != nil {
			log.Warn().Err(err).Msg("welcome announcement failed")
		}
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}

// audioSink returns the playback sink: a pipe to the player named by
// BUDDY_VISION_AUDIO_PIPE (e.g. a fifo consumed by aplay), or a discard
// sink when speech output is handled by the browser client.
func audioSink() speech.Sink {
	pipePath := os.Getenv("BUDDY_VISION_AUDIO_PIPE")
	if pipePath == "" {
		return speech.NullSink{}
	}
	f, err := os.OpenFile(pipePath, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		log.Warn().Err(err).Str("pipe", pipePath).Msg("audio pipe unavailable, discarding audio")
		return speech.NullSink{}
	}
	return speech.NewWriterSink(f)
}
