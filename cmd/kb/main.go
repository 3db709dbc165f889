package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"mindly-be/internal/config"
	"mindly-be/internal/pkg/logger"
	"mindly-be/internal/repository/implementation"
	"mindly-be/internal/service"
	"mindly-be/pkg/database"
	"mindly-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "kb",
	Short: "Manage the Mindly knowledge base",
	Long: `Seed, load and query the vector knowledge base the companion draws on.

Requires DB_CONNECTION_STRING and an embedding provider (EMBEDDING_PROVIDER,
GOOGLE_GEMINI_API_KEY or OLLAMA_BASE_URL).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every SQL statement")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Minute, "Operation timeout")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(loadPDFsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// knowledgeService builds the service the REST server uses, minus the async queue.
func knowledgeService(ctx context.Context) (service.IKnowledgeService, error) {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, verbose)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	embedder, err := embedding.NewEmbeddingProvider(ctx, cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel, cfg.Ai.OllamaBaseURL, cfg.Keys.GoogleGemini)
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	return service.NewKnowledgeService(
		implementation.NewKnowledgeRepository(db),
		embedder,
		nil,
		log,
		cfg.Knowledge.DefaultTopK,
	), nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
