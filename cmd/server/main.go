package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ganot/quadfund/internal/api"
	"github.com/ganot/quadfund/internal/bank"
	"github.com/ganot/quadfund/internal/config"
	"github.com/ganot/quadfund/internal/domain/contribution"
	"github.com/ganot/quadfund/internal/domain/distribution"
	"github.com/ganot/quadfund/internal/domain/matching"
	"github.com/ganot/quadfund/internal/domain/proposal"
	"github.com/ganot/quadfund/internal/domain/round"
	"github.com/ganot/quadfund/internal/sqlite"
	"github.com/ganot/quadfund/internal/transport"
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

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	roundRepo := sqlite.NewRoundRepository(db)
	proposalRepo := sqlite.NewProposalRepository(db)
	contributionRepo := sqlite.NewContributionRepository(db)
	resultRepo := sqlite.NewResultRepository(db)
	payoutRepo := sqlite.NewPayoutRepository(db)

	clock := round.SystemClock{}
	policy := round.Policy{
		OpenOnCreate:          cfg.Rounds.OpenOnCreate,
		AllowEarlyClose:       cfg.Rounds.AllowEarlyClose,
		Admin:                 cfg.Rounds.Admin,
		LeftoverRecipient:     cfg.Rounds.LeftoverRecipient,
		ProposalAllowlist:     cfg.Rounds.ProposalAllowlist,
		ContributionAllowlist: cfg.Rounds.ContributionAllowlist,
	}

	roundSvc := round.NewService(roundRepo, clock, policy, logger)
	proposalSvc := proposal.NewService(proposalRepo, roundRepo, clock, policy, logger)
	contributionSvc := contribution.NewService(contributionRepo, roundRepo, proposalRepo, clock, policy, logger)
	matchingSvc := matching.NewService(resultRepo, roundRepo, proposalRepo, contributionRepo, clock, policy, logger)
	distributionSvc := distribution.NewService(payoutRepo, bank.NewLogBank(logger), roundRepo, proposalRepo, resultRepo, contributionRepo, clock, policy, logger)

	handler := api.NewHandler(api.Services{
		Rounds:        roundSvc,
		Proposals:     proposalSvc,
		Contributions: contributionSvc,
		Matching:      matchingSvc,
		Distribution:  distributionSvc,
	}, logger)

	resolver := &apiKeyResolver{db: db}
	router := transport.NewServer(handler, transport.AuthMiddleware(resolver))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
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

type apiKeyResolver struct {
	db *sqlite.DB
}

func (r *apiKeyResolver) ResolveCaller(ctx context.Context, token string) (string, error) {
	hash := hashToken(token)
	var identity string
	err := r.db.QueryRowContext(ctx, `SELECT identity FROM api_keys WHERE key_hash = ?`, hash).Scan(&identity)
	if err != nil || identity == "" {
		return "", fmt.Errorf("unauthorized: invalid token")
	}
	return identity, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
