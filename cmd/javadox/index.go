package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"javadox/internal/loader"
	"javadox/internal/storage"
	"javadox/internal/watcher"
)

var (
	indexNoCache  bool
	indexWatch    bool
	indexInterval time.Duration
	indexDebounce time.Duration
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the searchable declaration index",
	Long: `Load every configured source root and write all classes, fields,
methods and doc tags to the sqlite index used by search. Each call
replaces the indexed declarations and records a new run.

With --watch the source roots are polled after the first run and the index
is rebuilt whenever Java files are added, changed or removed, until the
process is interrupted.

Examples:
  javadox index
  javadox index --no-cache
  javadox index --watch --interval=1s
  javadox index --root ../other-project --format=json`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexNoCache, "no-cache", false, "Reparse every file instead of using the parse cache")
	indexCmd.Flags().BoolVar(&indexWatch, "watch", false, "Keep running and reindex when sources change")
	indexCmd.Flags().DurationVar(&indexInterval, "interval", watcher.DefaultPollInterval, "Polling interval for --watch")
	indexCmd.Flags().DurationVar(&indexDebounce, "debounce", watcher.DefaultDebounce, "Quiet period before reindexing with --watch")
	rootCmd.AddCommand(indexCmd)
}

// IndexResponseCLI is the response format for index
type IndexResponseCLI struct {
	RunID        string   `json:"runId"`
	IndexPath    string   `json:"indexPath"`
	Files        int      `json:"files"`
	Parsed       int      `json:"parsed"`
	CacheHits    int      `json:"cacheHits"`
	Classes      int      `json:"classes"`
	Declarations int      `json:"declarations"`
	Changes      int      `json:"changes,omitempty"`
	Oversize     []string `json:"oversize,omitempty"`
	Failures     []string `json:"failures,omitempty"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	env, err := newEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.Close()

	lock, err := storage.AcquireLock(filepath.Dir(env.indexPath()))
	if err != nil {
		return err
	}
	defer lock.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := env.openIndex(ctx)
	if err != nil {
		return err
	}

	resp, err := indexOnce(ctx, env, db, !indexNoCache)
	if err != nil {
		return err
	}
	if err := writeResponse(cmd, resp); err != nil {
		return err
	}
	if !indexWatch {
		return nil
	}

	opts := loader.OptionsFromConfig(env.root, env.cfg, nil)
	w := watcher.New(watcher.Options{
		Roots:            opts.Roots,
		Exclude:          opts.Exclude,
		MaxFileSizeBytes: opts.MaxFileSizeBytes,
		PollInterval:     indexInterval,
		Debounce:         indexDebounce,
	}, env.logger, func(ctx context.Context, events []watcher.Event) {
		resp, err := indexOnce(ctx, env, db, !indexNoCache)
		if err != nil {
			env.logger.Error("Reindex failed", "error", err)
			return
		}
		resp.Changes = len(events)
		if err := writeResponse(cmd, resp); err != nil {
			env.logger.Error("Cannot write response", "error", err)
		}
	})
	return w.Run(ctx)
}

// indexOnce loads all sources and replaces the index contents.
func indexOnce(ctx context.Context, env *cliEnv, db *storage.DB, useCache bool) (*IndexResponseCLI, error) {
	res, err := env.loadLibrary(ctx, useCache)
	if err != nil {
		return nil, err
	}
	runID, err := db.WriteLibrary(ctx, res.Library)
	if err != nil {
		return nil, err
	}
	run, err := db.LatestRun(ctx)
	if err != nil {
		return nil, err
	}

	resp := &IndexResponseCLI{
		RunID:        runID,
		IndexPath:    db.Path(),
		Files:        res.Files,
		Parsed:       res.Parsed,
		CacheHits:    res.CacheHits,
		Classes:      run.Classes,
		Declarations: run.Declarations,
		Oversize:     res.Oversize,
	}
	for _, f := range res.Failures {
		resp.Failures = append(resp.Failures, f.Error())
	}
	return resp, nil
}
