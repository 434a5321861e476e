package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"server/internal/idphoto"
	"server/internal/infra"
	"server/internal/providers/genai"
	"server/internal/storage"
)

func main() {
	var (
		inFlag      string
		aspectFlag  string
		outFlag     string
		nameFlag    string
		timeoutFlag time.Duration
	)
	flag.StringVar(&inFlag, "in", "", "Path to the source portrait (PNG, JPEG, or WebP)")
	flag.StringVar(&aspectFlag, "aspect", idphoto.DefaultAspectRatio, "Aspect ratio of the generated photo, width:height")
	flag.StringVar(&outFlag, "out", ".", "Directory the generated photo is written to")
	flag.StringVar(&nameFlag, "name", "", "File name of the generated photo (defaults to id-photo-<ratio>.<ext>)")
	flag.DurationVar(&timeoutFlag, "timeout", 90*time.Second, "Maximum time to wait for the model")
	flag.Parse()

	if inFlag == "" {
		fmt.Fprintln(os.Stderr, "-in is required")
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "idphoto").Logger()

	data, err := os.ReadFile(inFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	meta, err := idphoto.SniffImage(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	client, err := genai.NewClient(genai.Options{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Logger:  &logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !client.HasCredentials() {
		logger.Warn().Str("model", client.Model()).
			Msg("idphoto: gemini api key missing, the transformation will fail")
	}

	photos, err := idphoto.NewService(client, &logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
	defer cancel()

	result, err := photos.Transform(ctx, idphoto.TransformRequest{
		Image:       idphoto.SourceImage{Data: data, MIMEType: meta.MIMEType, Filename: inFlag},
		AspectRatio: aspectFlag,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	store, err := storage.NewFileStore(outFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	name := nameFlag
	if name == "" {
		name = idphoto.FileName(result.AspectRatio, result.MIMEType)
	}
	// The transform may have consumed most of the timeout; the local write
	// gets its own context.
	key, err := store.Write(context.Background(), name, result.Data)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	path, err := store.Path(key)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (%s, %s)\n", path, result.MIMEType, result.AspectRatio)
}
