// Package loader discovers Java sources under the configured roots, parses
// them in parallel and registers the results into a sealed library.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"javadox/internal/config"
	"javadox/internal/errors"
	"javadox/internal/javaparser"
	"javadox/internal/library"
	"javadox/internal/model"
	"javadox/internal/parsecache"
	"javadox/internal/slogutil"
)

// SourceParser turns file content into a Source.
type SourceParser interface {
	ParseSource(ctx context.Context, path string, src []byte) (*model.Source, error)
}

// Options selects and bounds the files to load.
type Options struct {
	Roots            []string
	Exclude          []string
	MaxFileSizeBytes int64
	// Workers bounds parallel parsing; 0 means GOMAXPROCS.
	Workers int
	// Cache may be nil.
	Cache *parsecache.Cache
}

// OptionsFromConfig resolves cfg against the project root.
func OptionsFromConfig(root string, cfg *config.Config, cache *parsecache.Cache) Options {
	roots := make([]string, 0, len(cfg.Sources.Roots))
	for _, r := range cfg.Sources.Roots {
		roots = append(roots, config.Resolve(root, r))
	}
	return Options{
		Roots:            roots,
		Exclude:          cfg.Sources.Exclude,
		MaxFileSizeBytes: cfg.Sources.MaxFileSizeBytes,
		Workers:          cfg.Sources.Workers,
		Cache:            cache,
	}
}

// FileError records a file that could not be loaded.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Result is the outcome of Load.
type Result struct {
	Library   *library.SourceLibrary
	Files     int
	Parsed    int
	CacheHits int
	Oversize  []string
	Failures  []FileError
}

// Loader owns the parser used for every file.
type Loader struct {
	parser SourceParser
	logger *slog.Logger
}

// New creates a loader. A nil parser selects the tree-sitter parser.
func New(parser SourceParser, logger *slog.Logger) *Loader {
	logger = slogutil.OrDiscard(logger)
	if parser == nil {
		parser = javaparser.NewParser(logger)
	}
	return &Loader{parser: parser, logger: logger}
}

// ListFiles returns every Java file under roots in sorted order, skipping
// hidden and excluded directories. Files larger than maxSize are returned
// separately.
func ListFiles(roots, exclude []string, maxSize int64) (files, oversize []string, err error) {
	seen := make(map[string]bool)
	for _, root := range roots {
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				name := d.Name()
				if path != root && (strings.HasPrefix(name, ".") || slices.Contains(exclude, name)) {
					return filepath.SkipDir
				}
				return nil
			}
			if !javaparser.IsJavaFile(path) || seen[path] {
				return nil
			}
			seen[path] = true
			if maxSize > 0 {
				info, err := d.Info()
				if err != nil {
					return err
				}
				if info.Size() > maxSize {
					oversize = append(oversize, path)
					return nil
				}
			}
			files = append(files, path)
			return nil
		})
		if walkErr != nil {
			return nil, nil, fmt.Errorf("walk %s: %w", root, walkErr)
		}
	}
	slices.Sort(files)
	slices.Sort(oversize)
	return files, oversize, nil
}

type fileResult struct {
	source *model.Source
	cached bool
	err    error
}

// Load parses every selected file and returns a sealed library. Files that
// fail to read or parse are reported in Result.Failures; only cancellation
// and walk errors abort the load.
func (l *Loader) Load(ctx context.Context, opts Options) (*Result, error) {
	files, oversize, err := ListFiles(opts.Roots, opts.Exclude, opts.MaxFileSizeBytes)
	if err != nil {
		return nil, err
	}
	for _, path := range oversize {
		l.logger.Warn("Skipping oversize file", "path", path, "limit", opts.MaxFileSizeBytes)
	}

	jobs := opts.Workers
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine writes only its own index
	results := make([]fileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if len(files) > 0 {
		g.SetLimit(min(jobs, len(files)))
	}
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = l.loadFile(gctx, path, opts.Cache)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lib := library.NewSourceLibrary(l.logger)
	res := &Result{Library: lib, Files: len(files), Oversize: oversize}
	for i, r := range results {
		if r.err != nil {
			l.logger.Warn("Failed to load source", "path", files[i], "error", r.err)
			res.Failures = append(res.Failures, FileError{Path: files[i], Err: r.err})
			continue
		}
		if r.cached {
			res.CacheHits++
		} else {
			res.Parsed++
		}
		if err := lib.AddSource(r.source); err != nil {
			return nil, err
		}
	}
	lib.Seal()

	l.logger.Info("Loaded sources",
		"files", res.Files,
		"parsed", res.Parsed,
		"cacheHits", res.CacheHits,
		"failures", len(res.Failures),
		"classes", len(lib.Classes()),
	)
	return res, nil
}

func (l *Loader) loadFile(ctx context.Context, path string, cache *parsecache.Cache) fileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return fileResult{err: err}
	}

	key := parsecache.Key(path, content)
	src, ok, err := cache.Get(key)
	switch {
	case err != nil:
		l.logger.Warn("Ignoring parse cache entry", "path", path, "error", err)
	case ok:
		return fileResult{source: src, cached: true}
	}

	src, err = l.parser.ParseSource(ctx, path, content)
	if err != nil {
		return fileResult{err: err}
	}
	if err := cache.Put(key, src); err != nil {
		l.logger.Warn("Failed to write parse cache entry", "path", path, "error", err)
	}
	return fileResult{source: src}
}

// FirstFatal returns the first failure that no other file can succeed
// after, such as a missing tree-sitter parser, or nil.
func (r *Result) FirstFatal() error {
	for _, f := range r.Failures {
		if errors.CodeOf(f.Err) == errors.ParserUnavailable {
			return f.Err
		}
	}
	return nil
}
