// Command ytcomments scrapes the comments of a YouTube video into CSV or JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"ytcomments"
	"ytcomments/config"
	"ytcomments/export"
	"ytcomments/youtube"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// options holds the CLI flag values.
type options struct {
	apiKey   string
	max      int
	output   string
	logLevel string
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "ytcomments <video-url-or-id>",
		Short: "Scrape comments and replies from a YouTube video",
		Long: `ytcomments fetches all top-level comments and their replies for a YouTube
video through the Data API v3, flattens each thread into uniform records,
and writes them to CSV or JSON (chosen by the output file extension).

Without --output the comment tree is printed to stdout.

The API key is read from --api-key, the YTCOMMENTS_API_KEY environment
variable, or a .env file in the working directory.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(opts.logLevel)
			if err := run(cmd.Context(), args[0], opts, logger); err != nil {
				logger.Error("scrape failed", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.apiKey, "api-key", "k", "", "YouTube Data API key (or YTCOMMENTS_API_KEY)")
	cmd.Flags().IntVarP(&opts.max, "max", "m", 100, "Maximum number of comments to retrieve")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file path (.csv for CSV, otherwise JSON)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

// newLogger builds a colorized slog logger writing to stderr.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: lvl}))
}

func run(ctx context.Context, videoRef string, opts *options, logger *slog.Logger) error {
	// .env is optional; flags and real env vars take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.apiKey != "" {
		cfg.APIKey = opts.apiKey
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("api key required: pass --api-key or set YTCOMMENTS_API_KEY")
	}
	if opts.max < 1 {
		return fmt.Errorf("--max must be >= 1, got %d", opts.max)
	}

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	logger.Info("fetching comments", "video", videoRef, "max", opts.max)

	walker, err := ytcomments.NewWalker(ctx, videoRef, &ytcomments.Options{
		MaxComments: opts.max,
		Config:      cfg,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	if opts.output == "" {
		return printTree(ctx, walker, logger)
	}
	return writeFile(ctx, walker, opts.output, logger)
}

// writeFile streams records into a file sink as they arrive. Records
// emitted before a fatal upstream error are still flushed.
func writeFile(ctx context.Context, walker *youtube.Walker, path string, logger *slog.Logger) error {
	sink, err := export.NewFileSink(path)
	if err != nil {
		return err
	}

	for walker.Next(ctx) {
		if err := sink.Write(walker.Record()); err != nil {
			return errors.Join(err, sink.Close())
		}
	}

	if walkErr := walker.Err(); walkErr != nil {
		// Keep the partial capture: flush what was emitted, then fail.
		if closeErr := sink.Close(); closeErr == nil {
			logger.Warn("kept partial output", "path", path, "records", walker.Emitted())
		}
		return walkErr
	}

	if err := sink.Close(); err != nil {
		return err
	}

	logger.Info("saved comments",
		"path", path,
		"records", walker.Emitted(),
		"terminal", walker.Terminal().String(),
	)
	return nil
}

// printTree renders the comment tree to stdout, one block per thread.
func printTree(ctx context.Context, walker *youtube.Walker, logger *slog.Logger) error {
	var mains, replies int

	for walker.Next(ctx) {
		rec := walker.Record()
		if rec.Type == youtube.TypeMain {
			mains++
			if mains > 1 {
				fmt.Println(strings.Repeat("-", 80))
			}
			fmt.Printf("%d.\n", mains)
			fmt.Printf("%s: %s\n", rec.Author, rec.Text)
			fmt.Printf("Likes: %d | Published: %s\n", rec.Likes, rec.Published.Format("2006-01-02 15:04"))
			continue
		}
		replies++
		fmt.Printf("   └─ %s: %s\n", rec.Author, rec.Text)
		fmt.Printf("      Likes: %d | Published: %s\n", rec.Likes, rec.Published.Format("2006-01-02 15:04"))
	}

	if err := walker.Err(); err != nil {
		return err
	}

	fmt.Printf("\nTotal: %d main comments and %d replies (%d records, %s)\n",
		mains, replies, walker.Emitted(), walker.Terminal().String())
	logger.Debug("traversal finished", "terminal", walker.Terminal().String())
	return nil
}
