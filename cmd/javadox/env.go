package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"javadox/internal/config"
	"javadox/internal/errors"
	"javadox/internal/javaparser"
	"javadox/internal/loader"
	"javadox/internal/parsecache"
	"javadox/internal/slogutil"
	"javadox/internal/storage"
	"javadox/internal/textbuf"
)

// cliEnv is the per-invocation state shared by commands: project root,
// configuration and logger.
type cliEnv struct {
	root    string
	cfg     *config.Config
	logger  *slog.Logger
	cache   *parsecache.Cache
	closers []io.Closer
}

// newEnv loads and validates the configuration under --root and builds the
// logger. Console logging follows -v/--quiet; --log-file receives records
// at the configured level.
func newEnv(stderr io.Writer) (*cliEnv, error) {
	root, err := filepath.Abs(rootFlag)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return nil, errors.New(errors.ConfigInvalid, "cannot load "+config.Path(root), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.New(errors.ConfigInvalid, "invalid "+config.Path(root), err)
	}

	env := &cliEnv{root: root, cfg: cfg}

	consoleLevel := slogutil.LevelFromVerbosity(verbosity, quietFlag)
	console := consoleHandler(stderr, consoleLevel, cfg.Logging.Format, root)
	if logFile == "" {
		env.logger = slog.New(console)
		return env, nil
	}

	fileLevel := slogutil.LevelFromString(cfg.Logging.Level)
	if verbosity > 0 {
		fileLevel = min(fileLevel, consoleLevel)
	}
	fileLogger, f, err := slogutil.NewFileLogger(logFile, fileLevel)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	env.closers = append(env.closers, f)
	env.logger = slogutil.NewTeeLogger(console, fileLogger.Handler())
	return env, nil
}

// consoleHandler shortens paths under root in the line format. JSON output
// keeps them absolute.
func consoleHandler(w io.Writer, level slog.Level, format, root string) slog.Handler {
	h := slogutil.NewLoggerForFormat(w, level, format).Handler()
	if lh, ok := h.(*slogutil.Handler); ok {
		return lh.WithRoot(root)
	}
	return h
}

// Close releases files and databases opened for the command.
func (e *cliEnv) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
	e.closers = nil
}

// newSink returns an indentation buffer configured from render settings.
func (e *cliEnv) newSink() *textbuf.IndentBuffer {
	return textbuf.NewWithOptions(textbuf.Options{
		IndentWidth: e.cfg.Render.IndentWidth,
		UseTabs:     e.cfg.Render.UseTabs,
	})
}

// parseCache opens the configured parse cache once per invocation. It
// returns nil when the cache is disabled or cannot be opened.
func (e *cliEnv) parseCache() *parsecache.Cache {
	if !e.cfg.Cache.Enabled {
		return nil
	}
	if e.cache == nil {
		c, err := parsecache.Open(config.Resolve(e.root, e.cfg.Cache.Dir), e.logger)
		if err != nil {
			e.logger.Warn("Parse cache disabled", "error", err)
			e.cfg.Cache.Enabled = false
			return nil
		}
		e.cache = c
		e.closers = append(e.closers, c)
	}
	return e.cache
}

// loadLibrary loads every configured source root. A missing parser is
// reported as an error; other per-file failures are only logged.
func (e *cliEnv) loadLibrary(ctx context.Context, useCache bool) (*loader.Result, error) {
	var cache *parsecache.Cache
	if useCache {
		cache = e.parseCache()
	}

	l := loader.New(javaparser.NewParser(e.logger), e.logger)
	res, err := l.Load(ctx, loader.OptionsFromConfig(e.root, e.cfg, cache))
	if err != nil {
		return nil, err
	}
	if err := res.FirstFatal(); err != nil {
		return nil, err
	}
	return res, nil
}

// indexPath is the configured sqlite index location.
func (e *cliEnv) indexPath() string {
	return config.Resolve(e.root, e.cfg.Index.Path)
}

// openIndex opens the configured declaration index.
func (e *cliEnv) openIndex(ctx context.Context) (*storage.DB, error) {
	db, err := storage.Open(ctx, e.indexPath(), e.logger)
	if err != nil {
		return nil, err
	}
	e.closers = append(e.closers, db)
	return db, nil
}
