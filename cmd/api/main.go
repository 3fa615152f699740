package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fastprodman/tokenledger/internal/api"
	"github.com/fastprodman/tokenledger/internal/infra/logging"
	"github.com/fastprodman/tokenledger/internal/infra/pgutils"
	"github.com/fastprodman/tokenledger/internal/ledger"
	"github.com/fastprodman/tokenledger/internal/services/token"
	"github.com/fastprodman/tokenledger/pkg/envconf"
	"github.com/fastprodman/tokenledger/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("close db")

		return db.Close()
	})

	tokenSrv, err := token.New(ctx, db, token.Config{
		Metadata: ledger.Metadata{
			Name:        cfg.Token.Name,
			Symbol:      cfg.Token.Symbol,
			Decimals:    cfg.Token.Decimals,
			MetadataURI: cfg.Token.MetadataURI,
		},
		Admin:        ledger.Address(cfg.Token.Admin),
		CampaignGoal: cfg.Token.CampaignGoal,
	})
	if err != nil {
		return fmt.Errorf("init token service: %w", err)
	}

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, tokenSrv)

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port, "token", cfg.Token.Symbol)

	select {
	case <-ctx.Done():
		// graceful path; the deferred shutdownqueue drain runs
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
