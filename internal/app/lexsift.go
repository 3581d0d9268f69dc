// Package app contains the core pipeline logic for the lexsift CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lexsift/lexsift/internal/annotate"
	"github.com/lexsift/lexsift/internal/corpus"
	"github.com/lexsift/lexsift/internal/counter"
	"github.com/lexsift/lexsift/internal/fetch"
	"github.com/lexsift/lexsift/internal/filter"
	"github.com/lexsift/lexsift/internal/grade"
	"github.com/lexsift/lexsift/internal/lexicon"
	"github.com/lexsift/lexsift/internal/sample"
	"github.com/lexsift/lexsift/internal/spinner"
	"github.com/lexsift/lexsift/internal/store"
)

// Config holds all configuration options for a grading run.
type Config struct {
	Sources        []string // corpus files, URLs, or "-" for stdin
	RankedListPath string   // frequency-ranked word list (required)
	DictionaryPath string   // optional word,level CSV
	NamesPath      string   // optional common-name list
	BannedPath     string   // optional banned word list
	MaxWords       int      // pre-filter word-count ceiling; 0 uses the default
	SkipFilter     bool     // grade everything, including filtered-out sentences
	DifficultyPath string   // TOML difficulty tables; empty uses a preset
	Preset         string   // "default" or "approx"
	Jobs           int      // grading concurrency; 0 uses GOMAXPROCS
	DBPath         string   // optional SQLite output
	Quiet          bool     // suppress the progress spinner
	Debug          bool
}

// Result is what a grading run produces.
type Result struct {
	Graded   []corpus.Graded
	Rejected []filter.Rejection
}

// Run executes the grading pipeline:
//
//  1. load the lexicon (ranked list, dictionary, names)
//  2. load the difficulty tables
//  3. read sentences from all sources
//  4. apply pre-filters
//  5. annotate and grade in parallel
//  6. optionally persist to SQLite
//
// ctx cancels in-flight fetches and grading workers.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if len(cfg.Sources) == 0 {
		return Result{}, fmt.Errorf("no sources provided")
	}
	if cfg.RankedListPath == "" {
		return Result{}, fmt.Errorf("a ranked word list is required")
	}

	resolver, err := LoadResolver(ctx, cfg)
	if err != nil {
		return Result{}, err
	}

	difficulty, err := loadDifficulty(cfg)
	if err != nil {
		return Result{}, err
	}

	sentences, err := readSources(ctx, cfg.Sources)
	if err != nil {
		return Result{}, err
	}
	slog.Debug("sentences read", "count", len(sentences))

	var rejected []filter.Rejection
	if !cfg.SkipFilter {
		f, err := newFilter(ctx, cfg)
		if err != nil {
			return Result{}, err
		}
		sentences, rejected = f.Apply(sentences)
		slog.Debug("pre-filter applied", "kept", len(sentences), "rejected", len(rejected))
	}

	var sp *spinner.Spinner
	if !cfg.Quiet {
		sp = spinner.New(ctx, os.Stderr, fmt.Sprintf("Grading %d sentences...", len(sentences)))
		sp.Start()
		defer sp.Stop()
	}

	graded, gradeRejections, err := gradeAll(ctx, sentences, resolver, difficulty, cfg.Jobs)
	if err != nil {
		return Result{}, err
	}
	rejected = append(rejected, gradeRejections...)

	if cfg.DBPath != "" {
		if err := persist(ctx, cfg.DBPath, graded, rejected); err != nil {
			return Result{}, err
		}
	}

	return Result{Graded: graded, Rejected: rejected}, nil
}

// LoadResolver builds the lexicon resolver from the configured word lists.
func LoadResolver(ctx context.Context, cfg Config) (*lexicon.Resolver, error) {
	ranked, err := readRanked(ctx, cfg.RankedListPath)
	if err != nil {
		return nil, err
	}

	var dict lexicon.Dictionary
	if cfg.DictionaryPath != "" {
		reader, err := fetch.GetContent(ctx, cfg.DictionaryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary: %w", err)
		}
		defer reader.Close()
		d, err := lexicon.NewCSVDictionary(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to parse dictionary: %w", err)
		}
		dict = d
		slog.Debug("dictionary loaded", "entries", d.Len())
	}

	var names []string
	if cfg.NamesPath != "" {
		reader, err := fetch.GetContent(ctx, cfg.NamesPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load name list: %w", err)
		}
		defer reader.Close()
		if names, err = lexicon.ReadNames(reader); err != nil {
			return nil, fmt.Errorf("failed to parse name list: %w", err)
		}
	}

	return lexicon.NewResolver(ranked, dict, names), nil
}

func readRanked(ctx context.Context, path string) ([]string, error) {
	reader, err := fetch.GetContent(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load ranked word list: %w", err)
	}
	defer reader.Close()

	ranked, err := lexicon.ReadRankedList(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ranked word list: %w", err)
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("ranked word list %q is empty", path)
	}
	slog.Debug("ranked list loaded", "words", len(ranked))
	return ranked, nil
}

func loadDifficulty(cfg Config) (grade.Config, error) {
	if cfg.DifficultyPath != "" {
		return grade.LoadFile(cfg.DifficultyPath)
	}
	return grade.Preset(cfg.Preset)
}

func newFilter(ctx context.Context, cfg Config) (*filter.Filter, error) {
	var opts []filter.Option
	if cfg.MaxWords > 0 {
		opts = append(opts, filter.WithMaxWords(cfg.MaxWords))
	}
	if cfg.BannedPath != "" {
		reader, err := fetch.GetContent(ctx, cfg.BannedPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load banned word list: %w", err)
		}
		defer reader.Close()
		banned, err := filter.ReadBanned(reader)
		if err != nil {
			return nil, err
		}
		opts = append(opts, filter.WithBanned(banned))
	}
	return filter.New(opts...), nil
}

// readSources reads and concatenates sentences from all sources. A failing
// source is a warning, not a fatal error, unless nothing could be read.
func readSources(ctx context.Context, sources []string) ([]corpus.Sentence, error) {
	var all []corpus.Sentence
	for _, source := range sources {
		reader, err := fetch.GetContent(ctx, source)
		if err != nil {
			slog.Warn("failed to open source", "source", source, "error", err)
			continue
		}
		sentences, err := corpus.Read(reader)
		reader.Close()
		if err != nil {
			slog.Warn("failed to read source", "source", source, "error", err)
			continue
		}
		all = append(all, sentences...)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no sentences read from any source")
	}
	return all, nil
}

// gradeAll annotates and grades sentences in parallel. Each worker owns
// its own annotator and grader and writes a disjoint stride of the result
// slices, so no mutex is needed. Sentences whose annotation fails become
// rejections, not run failures.
func gradeAll(ctx context.Context, sentences []corpus.Sentence, resolver *lexicon.Resolver, difficulty grade.Config, jobs int) ([]corpus.Graded, []filter.Rejection, error) {
	if len(sentences) == 0 {
		return nil, nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	workers := min(jobs, len(sentences))

	results := make([]corpus.Graded, len(sentences))
	failures := make([]string, len(sentences))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			annotator := annotate.NewProseAnnotator()
			grader := grade.New(resolver, difficulty)

			for i := w; i < len(sentences); i += workers {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				s := sentences[i]
				tokens, err := annotator.Annotate(s.Text)
				if err != nil {
					failures[i] = fmt.Sprintf("annotation_failed_%v", err)
					continue
				}
				level, metrics := grader.Grade(tokens)
				results[i] = corpus.Graded{Sentence: s, Level: level, Metrics: metrics}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	graded := make([]corpus.Graded, 0, len(sentences))
	var rejected []filter.Rejection
	for i, s := range sentences {
		if failures[i] != "" {
			rejected = append(rejected, filter.Rejection{Sentence: s, Reason: failures[i]})
			continue
		}
		graded = append(graded, results[i])
	}
	return graded, rejected, nil
}

func persist(ctx context.Context, path string, graded []corpus.Graded, rejected []filter.Rejection) error {
	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.InsertGraded(ctx, graded); err != nil {
		return fmt.Errorf("failed to store graded sentences: %w", err)
	}
	for _, r := range rejected {
		if err := db.InsertRejections(ctx, r.Sentence.ID, r.Reason, r.Sentence.Text); err != nil {
			return fmt.Errorf("failed to store rejection: %w", err)
		}
	}
	return nil
}

// Summary describes a graded corpus for reporting.
type Summary struct {
	Total    int
	Unknown  int
	Levels   []sample.LevelCount
	Rejected map[string]int
	Units    int
	UnitName string
}

// Summarize computes the level distribution and total size of a graded
// corpus using the given counting method.
func Summarize(result Result, method counter.CountingMethod) (Summary, error) {
	c, err := counter.NewCounter(method)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to create counter: %w", err)
	}

	levels, unknown := sample.Distribution(result.Graded)
	units := 0
	for _, g := range result.Graded {
		units += c.Count(g.Text)
	}

	reasons := make(map[string]int)
	for _, r := range result.Rejected {
		reasons[r.Reason]++
	}

	return Summary{
		Total:    len(result.Graded),
		Unknown:  unknown,
		Levels:   levels,
		Rejected: reasons,
		Units:    units,
		UnitName: c.Name(),
	}, nil
}
