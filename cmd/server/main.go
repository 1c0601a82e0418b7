package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/jqzhang/crmsheet/internal/config"
	"github.com/jqzhang/crmsheet/internal/domain/activity"
	"github.com/jqzhang/crmsheet/internal/domain/customer"
	"github.com/jqzhang/crmsheet/internal/domain/note"
	"github.com/jqzhang/crmsheet/internal/sheets"
	"github.com/jqzhang/crmsheet/internal/sheetstore"
	"github.com/jqzhang/crmsheet/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	loc, err := time.LoadLocation(cfg.Sheets.Timezone)
	if err != nil {
		logger.Error("invalid timezone", "timezone", cfg.Sheets.Timezone, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	creds, err := loadCredentials(ctx, cfg.Sheets.CredentialsFile)
	if err != nil {
		logger.Error("service account credentials are required", "error", err)
		os.Exit(1)
	}

	svc, err := gsheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		logger.Error("failed to create sheets service", "error", err)
		os.Exit(1)
	}

	opts := sheets.DefaultOptions()
	if cfg.Sheets.CacheTTL > 0 {
		opts.CacheTTL = cfg.Sheets.CacheTTL
	}
	if cfg.Sheets.MetadataTTL > 0 {
		opts.MetadataTTL = cfg.Sheets.MetadataTTL
	}
	client := sheets.NewClient(sheets.NewGoogleAPI(svc, cfg.Sheets.SpreadsheetID), opts, logger)

	customerRepo := sheetstore.NewCustomerRepository(client, cfg.Sheets.MainSheet)
	if err := customerRepo.Ensure(ctx); err != nil {
		logger.Error("failed to ensure main sheet", "sheet", cfg.Sheets.MainSheet, "error", err)
		os.Exit(1)
	}
	noteRepo := sheetstore.NewNoteRepository(client, loc)

	customerSvc := customer.NewService(customerRepo, loc, logger)
	noteSvc := note.NewService(noteRepo, customerRepo, loc, logger)
	activitySvc := activity.NewService(noteRepo, loc, logger)

	router := transport.NewRouter(transport.Services{
		Customers: customerSvc,
		Notes:     noteSvc,
		Activity:  activitySvc,
	}, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "spreadsheet", cfg.Sheets.SpreadsheetID)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// loadCredentials resolves the service account key: the configured path, then
// GOOGLE_APPLICATION_CREDENTIALS, then ./service_account.json. Missing or
// malformed credentials are fatal at startup.
func loadCredentials(ctx context.Context, configured string) (*google.Credentials, error) {
	candidates := []string{
		configured,
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		"service_account.json",
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading credentials file %q: %w", path, err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, gsheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("parsing credentials file %q: %w", path, err)
		}
		return creds, nil
	}
	return nil, fmt.Errorf("no service account key found (set CRMSHEET_CREDENTIALS_FILE or GOOGLE_APPLICATION_CREDENTIALS)")
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
