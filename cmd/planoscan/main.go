package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
	"github.com/planoscan/planoscan/internal/extract"
	"github.com/planoscan/planoscan/internal/ocr"
	"github.com/planoscan/planoscan/internal/scan"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("planoscan")
	var (
		port           = fs.IntLong("port", 8080, "HTTP server port")
		dbPath         = fs.StringLong("db", "planoscan.db", "Database file path")
		storagePath    = fs.StringLong("storage", "./sheets", "Storage directory path")
		provider       = fs.StringLong("provider", "ocrspace", "OCR provider: 'ocrspace', 'gemini', 'tesseract' or 'ollama'")
		ocrSpaceKey    = fs.StringLong("ocrspace-key", "", "OCR.Space API key (or set OCR_SPACE_API_KEY env var)")
		ocrSpaceURL    = fs.StringLong("ocrspace-url", ocr.DefaultOCRSpaceURL, "OCR.Space endpoint URL")
		geminiKey      = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel    = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		tesseractLangs = fs.StringLong("tesseract-langs", "eng", "Tesseract languages, comma separated (e.g., eng,deu)")
		ollamaURL      = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama server URL")
		ollamaModel    = fs.StringLong("ollama-model", "llava", "Ollama vision model name")
		patternsPath   = fs.StringLong("patterns", "", "Pattern config file path (YAML, optional)")
		maxRecords     = fs.IntLong("max-records", 0, "Maximum records per extraction (0 uses the pattern config value)")
		authUser       = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass       = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion    = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("PLANOSCAN"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Load extraction patterns
	cfg := extract.DefaultConfig()
	if *patternsPath != "" {
		var err error
		cfg, err = extract.LoadConfig(*patternsPath)
		if err != nil {
			slog.Error("Failed to load pattern config", "path", *patternsPath, "error", err)
			os.Exit(1)
		}
	}
	if *maxRecords > 0 {
		cfg.MaxRecords = *maxRecords
	}
	engine, err := extract.NewEngine(cfg)
	if err != nil {
		slog.Error("Invalid pattern config", "error", err)
		os.Exit(1)
	}

	// Initialize database
	slog.Info("Initializing database...")
	db, err := scan.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize OCR provider based on type
	var client ocr.Client
	switch *provider {
	case "ocrspace":
		apiKey := *ocrSpaceKey
		if apiKey == "" {
			apiKey = os.Getenv("OCR_SPACE_API_KEY")
		}
		if apiKey == "" {
			slog.Error("OCR.Space API key is required. Set --ocrspace-key flag or OCR_SPACE_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing OCR.Space provider...", "url", *ocrSpaceURL)
		client, err = ocr.NewOCRSpace(apiKey, *ocrSpaceURL)
		if err != nil {
			slog.Error("Failed to initialize OCR.Space", "error", err)
			os.Exit(1)
		}
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini provider...", "model", *geminiModel)
		client, err = ocr.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "tesseract":
		slog.Info("Initializing Tesseract provider...", "languages", *tesseractLangs)
		client, err = ocr.NewTesseract(*tesseractLangs)
		if err != nil {
			slog.Error("Failed to initialize Tesseract", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama provider...", "url", *ollamaURL, "model", *ollamaModel)
		client, err = ocr.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	default:
		slog.Error("Invalid OCR provider", "provider", *provider, "valid", "ocrspace, gemini, tesseract or ollama")
		os.Exit(1)
	}
	defer client.Close()

	// Initialize storage
	slog.Info("Initializing storage...")
	store, err := scan.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	// Initialize service
	scanService := scan.NewService(db, client, store, engine)

	// Initialize server
	basicAuth := scan.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := scan.NewServer(scanService, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
