package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lexicorp/internal/compress"
	"lexicorp/internal/config"
	"lexicorp/internal/corpus"
	"lexicorp/internal/fingerprint"
	"lexicorp/internal/storage"
	"lexicorp/internal/textprocessor"
)

var (
	cfgFile string
	dbPath  string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lexicorp",
	Short: "Deduplicating text-corpus store with TF-IDF lemma reports",
	Long: `lexicorp ingests documents into a SQLite-backed corpus, deduplicates
them by content fingerprint, maintains a shared vocabulary of lemmas, and
answers term-importance (TF-IDF) queries per document.

Example usage:
  lexicorp add article.txt       # Ingest a document (or pipe via stdin)
  lexicorp report 3              # Ranked lemma statistics for document 3
  lexicorp rm 3                  # Delete document 3
  lexicorp stats                 # Corpus and vocabulary size`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		path := cfgFile
		if path == "" {
			path = "lexicorp.yaml"
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return setupLogging(cfg)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./lexicorp.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "corpus database path (overrides config)")
}

func setupLogging(cfg *config.Config) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		level = slog.LevelInfo
	}

	out := io.Writer(os.Stderr)
	if cfg.Logging.File != "" {
		logFile, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		out = io.MultiWriter(os.Stderr, logFile)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return nil
}

// openCorpus wires the full pipeline from config. Callers own Close.
func openCorpus() (*corpus.Corpus, error) {
	path := cfg.Storage.Path
	if dbPath != "" {
		path = dbPath
	}

	store, err := storage.NewCorpusDB(path)
	if err != nil {
		return nil, err
	}

	lemmatizer := textprocessor.NewLemmatizer(cfg.Lemmatizer.Language)
	lemmatizer.AddStopWords(cfg.Lemmatizer.ExtraStopWords)

	c, err := corpus.New(store, lemmatizer, fingerprint.Hash64{}, compress.XZ{}, slog.Default())
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

// readInput returns the text of the file argument, or stdin for "-" or no
// argument.
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), nil
}
