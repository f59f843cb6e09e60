package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tradeJournal/config"
	"tradeJournal/internal/adapters/gemini"
	"tradeJournal/internal/adapters/logger"
	"tradeJournal/internal/adapters/memory"
	"tradeJournal/internal/app"
	"tradeJournal/internal/ports"
	"tradeJournal/internal/tradecsv"
)

// appDependency holds the wired components shared by every command.
type appDependency struct {
	cfg     *config.Config
	log     *logger.ZapLogger
	service *app.JournalService
}

func newAppDependency(ctx context.Context, opts *rootOptions) (*appDependency, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = logger.ParseLevel(opts.logLevel)
	}

	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		return nil, err
	}

	repo, err := memory.NewRepository(memory.Config{Logger: log})
	if err != nil {
		return nil, err
	}

	service, err := app.NewJournalService(cfg, log, repo, newAnalyst(ctx, cfg, log))
	if err != nil {
		return nil, err
	}

	if opts.seed || cfg.SeedDemoTrades {
		if _, err := service.Seed(ctx); err != nil {
			return nil, err
		}
	}

	return &appDependency{cfg: cfg, log: log, service: service}, nil
}

// newAnalyst returns the Gemini analyst, or the no-op one when it cannot be built.
func newAnalyst(ctx context.Context, cfg *config.Config, log ports.Logger) ports.TradeAnalyst {
	client, err := gemini.New(ctx, gemini.Config{
		APIKey:            cfg.GeminiAPIKey,
		Model:             cfg.GeminiModel,
		Timeout:           cfg.GeminiTimeout,
		RequestsPerMinute: cfg.AIRequestsPerMinute,
		Logger:            log,
	})
	if err != nil {
		if errors.Is(err, ports.ErrMissingCredential) {
			log.Info(ctx, "GEMINI_API_KEY not set, AI analysis disabled")
		} else {
			log.Error(ctx, err, "Failed to initialize Gemini analyst, AI analysis disabled")
		}
		return gemini.Noop{}
	}
	return client
}

func (d *appDependency) Close() error {
	// Sync on a terminal stderr returns EINVAL on some platforms; nothing to report.
	_ = d.log.Sync()
	return nil
}

// importFile loads a CSV file into the journal.
func (d *appDependency) importFile(ctx context.Context, path string) (*tradecsv.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	result, err := d.service.ImportReader(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", path, err)
	}
	return result, nil
}

// loadJournal imports the optional CSV argument and reports the outcome on w.
func (d *appDependency) loadJournal(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return nil
	}
	result, err := d.importFile(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Imported %d trades from %s (%d rows skipped)\n\n", result.Accepted(), args[0], result.Skipped)
	return nil
}
