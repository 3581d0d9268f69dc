package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lexsift/lexsift/internal/annotate"
	"github.com/lexsift/lexsift/internal/app"
	"github.com/lexsift/lexsift/internal/cefr"
	"github.com/lexsift/lexsift/internal/corpus"
	"github.com/lexsift/lexsift/internal/counter"
	"github.com/lexsift/lexsift/internal/fetch"
	"github.com/lexsift/lexsift/internal/filter"
	"github.com/lexsift/lexsift/internal/grade"
	"github.com/lexsift/lexsift/internal/sample"
	"github.com/lexsift/lexsift/internal/store"
)

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// buildConfig constructs an app.Config from command flags and arguments
func buildConfig(cmd *cobra.Command, args []string) app.Config {
	ranked, _ := cmd.Flags().GetString("ranked")
	dictionary, _ := cmd.Flags().GetString("dictionary")
	names, _ := cmd.Flags().GetString("names")
	banned, _ := cmd.Flags().GetString("banned")
	maxWords, _ := cmd.Flags().GetInt("max-words")
	skipFilter, _ := cmd.Flags().GetBool("skip-filter")
	configPath, _ := cmd.Flags().GetString("config")
	preset, _ := cmd.Flags().GetString("preset")
	jobs, _ := cmd.Flags().GetInt("jobs")
	dbPath, _ := cmd.Flags().GetString("db")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	return app.Config{
		Sources:        sources,
		RankedListPath: ranked,
		DictionaryPath: dictionary,
		NamesPath:      names,
		BannedPath:     banned,
		MaxWords:       maxWords,
		SkipFilter:     skipFilter,
		DifficultyPath: configPath,
		Preset:         preset,
		Jobs:           jobs,
		DBPath:         dbPath,
		Quiet:          quiet,
		Debug:          debug,
	}
}

// openOutput resolves the -o flag; "-" or empty means stdout.
func openOutput(cmd *cobra.Command) (io.WriteCloser, error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" || path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func closeOutput(w io.WriteCloser) {
	if w != os.Stdout {
		_ = w.Close()
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

var rootCmd = &cobra.Command{
	Use:   "lexsift",
	Short: "A CLI tool for grading sentence difficulty",
	Long: `Lexsift assigns CEFR levels (A1 through C2) to English sentences using
word-frequency ranks, part-of-speech tags, and per-level difficulty tables.
Sources may include local files, URLs, or standard input.

Examples:
  lexsift grade --ranked words.txt sentences.tsv
  lexsift inspect --ranked words.txt "I am a cat."
  cat sentences.tsv | lexsift filter`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		setupLogger(debug)
	},
}

var gradeCmd = &cobra.Command{
	Use:   "grade [sources...]",
	Short: "Grade sentences and emit a level-annotated TSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		result, err := app.Run(ctx, buildConfig(cmd, args))
		if err != nil {
			return fmt.Errorf("grading failed: %w", err)
		}

		out, err := openOutput(cmd)
		if err != nil {
			return err
		}
		defer closeOutput(out)

		if err := corpus.WriteGraded(out, result.Graded); err != nil {
			return err
		}

		if rejectedPath, _ := cmd.Flags().GetString("rejected"); rejectedPath != "" {
			if err := writeRejections(rejectedPath, result.Rejected); err != nil {
				return err
			}
		}
		slog.Debug("grading complete", "graded", len(result.Graded), "rejected", len(result.Rejected))
		return nil
	},
}

func writeRejections(path string, rejections []filter.Rejection) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, r := range rejections {
		if _, err := fmt.Fprintf(f, "%s\t%s\t%s\n", r.Sentence.ID, r.Reason, r.Sentence.Text); err != nil {
			return err
		}
	}
	return nil
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <sentence>",
	Short: "Show per-token grading details for one sentence",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		cfg := buildConfig(cmd, nil)
		resolver, err := app.LoadResolver(ctx, cfg)
		if err != nil {
			return err
		}
		difficulty, err := loadDifficulty(cmd)
		if err != nil {
			return err
		}

		text := strings.Join(args, " ")
		tokens, err := annotate.NewProseAnnotator().Annotate(text)
		if err != nil {
			return fmt.Errorf("annotation failed: %w", err)
		}

		grader := grade.New(resolver, difficulty)
		level, metrics := grader.Grade(tokens)

		bold := color.New(color.Bold)
		fmt.Printf("%s  %s\n\n", levelColor(level).Add(color.Bold).Sprint(level), text)
		bold.Printf("%-15s %-15s %-6s %-8s %-5s %-5s %-5s %-7s %-7s %-5s %s\n",
			"TOKEN", "LEMMA", "POS", "SHAPE", "STOP", "ENT", "NAME", "RANK", "LRANK", "DICT", "LEVEL")
		for _, tg := range grader.GradeTokens(tokens) {
			fmt.Printf("%-15s %-15s %-6s %-8s %-5s %-5s %-5s %-7d %-7d %-5s %s\n",
				tg.Token.Text, tg.Token.Lemma, tg.Token.POS, tg.Token.Shape,
				mark(tg.Token.Stop), mark(tg.Token.Entity), mark(tg.IsName),
				tg.WordRank, tg.LemmaRank, levelCell(tg.DictLevel),
				levelColor(tg.Combined).Sprint(levelCell(tg.Combined)))
		}
		fmt.Printf("\nwords=%d content_words=%d max_rank=%d avg_rank=%.1f\n",
			metrics.WordsWithStops, metrics.WordsWithoutStops, metrics.MaxRank, metrics.AverageRank)
		return nil
	},
}

func mark(b bool) string {
	if b {
		return "x"
	}
	return "-"
}

func levelCell(l cefr.Level) string {
	if !l.Known() {
		return "-"
	}
	return l.String()
}

func levelColor(l cefr.Level) *color.Color {
	switch l {
	case cefr.A1, cefr.A2:
		return color.New(color.FgGreen)
	case cefr.B1, cefr.B2:
		return color.New(color.FgYellow)
	case cefr.C1, cefr.C2:
		return color.New(color.FgRed)
	default:
		return color.New(color.Faint)
	}
}

func loadDifficulty(cmd *cobra.Command) (grade.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return grade.LoadFile(path)
	}
	preset, _ := cmd.Flags().GetString("preset")
	return grade.Preset(preset)
}

var filterCmd = &cobra.Command{
	Use:   "filter [sources...]",
	Short: "Apply pre-filters without grading",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		cfg := buildConfig(cmd, args)
		sentences, err := readAllSources(ctx, cfg.Sources)
		if err != nil {
			return err
		}

		var opts []filter.Option
		if cfg.MaxWords > 0 {
			opts = append(opts, filter.WithMaxWords(cfg.MaxWords))
		}
		if cfg.BannedPath != "" {
			reader, err := fetch.GetContent(ctx, cfg.BannedPath)
			if err != nil {
				return err
			}
			banned, err := filter.ReadBanned(reader)
			reader.Close()
			if err != nil {
				return err
			}
			opts = append(opts, filter.WithBanned(banned))
		}

		kept, rejected := filter.New(opts...).Apply(sentences)

		out, err := openOutput(cmd)
		if err != nil {
			return err
		}
		defer closeOutput(out)

		for _, s := range kept {
			fmt.Fprintf(out, "%s\t%s\t%s\n", s.ID, s.Lang, s.Text)
		}
		for _, r := range rejected {
			slog.Debug("rejected", "id", r.Sentence.ID, "reason", r.Reason)
		}
		fmt.Fprintf(os.Stderr, "kept %d of %d sentences\n", len(kept), len(sentences))
		return nil
	},
}

func readAllSources(ctx context.Context, sources []string) ([]corpus.Sentence, error) {
	var all []corpus.Sentence
	for _, source := range sources {
		reader, err := fetch.GetContent(ctx, source)
		if err != nil {
			return nil, err
		}
		sentences, err := corpus.Read(reader)
		reader.Close()
		if err != nil {
			return nil, err
		}
		all = append(all, sentences...)
	}
	return all, nil
}

var sampleCmd = &cobra.Command{
	Use:   "sample [graded.tsv]",
	Short: "Draw a balanced per-level sample from a graded corpus",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		dbPath, _ := cmd.Flags().GetString("db")
		var graded []corpus.Graded
		switch {
		case dbPath != "":
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			for _, level := range cefr.All {
				rows, err := db.ByLevel(ctx, level, 0)
				if err != nil {
					return err
				}
				graded = append(graded, rows...)
			}
		case len(args) == 1:
			reader, err := fetch.GetContent(ctx, args[0])
			if err != nil {
				return err
			}
			defer reader.Close()
			if graded, err = corpus.ReadGraded(reader); err != nil {
				return err
			}
		default:
			return fmt.Errorf("either a graded TSV or --db is required")
		}

		perLevel, _ := cmd.Flags().GetInt("per-level")
		seed, _ := cmd.Flags().GetInt64("seed")
		sampled := sample.PerLevel(graded, perLevel, seed)

		out, err := openOutput(cmd)
		if err != nil {
			return err
		}
		defer closeOutput(out)
		return corpus.WriteGraded(out, sampled)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <graded.tsv>",
	Short: "Report the level distribution and size of a graded corpus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		reader, err := fetch.GetContent(ctx, args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		graded, err := corpus.ReadGraded(reader)
		if err != nil {
			return err
		}

		method := counter.Tokens
		if words, _ := cmd.Flags().GetBool("words"); words {
			method = counter.Words
		}
		if chars, _ := cmd.Flags().GetBool("characters"); chars {
			method = counter.Characters
		}

		summary, err := app.Summarize(app.Result{Graded: graded}, method)
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		fmt.Printf("%s %d sentences, %d %s\n\n", bold.Sprint("Total:"), summary.Total, summary.Units, summary.UnitName)
		for _, lc := range summary.Levels {
			pct := 0.0
			if summary.Total > 0 {
				pct = 100 * float64(lc.Count) / float64(summary.Total)
			}
			fmt.Printf("  %s %6d  %5.1f%%\n", levelColor(lc.Level).Sprintf("%-3s", lc.Level), lc.Count, pct)
		}
		if summary.Unknown > 0 {
			fmt.Printf("  %-3s %d\n", "?", summary.Unknown)
		}
		if len(summary.Rejected) > 0 {
			fmt.Println()
			reasons := make([]string, 0, len(summary.Rejected))
			for reason := range summary.Rejected {
				reasons = append(reasons, reason)
			}
			sort.Strings(reasons)
			for _, reason := range reasons {
				fmt.Printf("  rejected %-20s %d\n", reason, summary.Rejected[reason])
			}
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("ranked", "r", "", "Frequency-ranked word list (one word per line)")
	pf.String("dictionary", "", "Word-level dictionary CSV (word,level)")
	pf.String("names", "", "Common-name list")
	pf.String("config", "", "Difficulty tables TOML file")
	pf.String("preset", "", "Difficulty preset: default or approx")
	pf.StringP("output", "o", "", "Output file (default: stdout)")
	pf.BoolP("quiet", "q", false, "Suppress progress messages")
	pf.BoolP("debug", "D", false, "Enable debug logging")
	_ = pf.MarkHidden("debug")

	gradeCmd.Flags().String("banned", "", "Banned word list (one entry per line)")
	gradeCmd.Flags().Int("max-words", 0, "Pre-filter word-count ceiling (default: 30)")
	gradeCmd.Flags().Bool("skip-filter", false, "Grade everything, skipping pre-filters")
	gradeCmd.Flags().IntP("jobs", "j", 0, "Grading concurrency (default: number of CPUs)")
	gradeCmd.Flags().String("db", "", "Also store results in a SQLite database")
	gradeCmd.Flags().String("rejected", "", "Write rejected sentences and reasons to a file")

	filterCmd.Flags().String("banned", "", "Banned word list (one entry per line)")
	filterCmd.Flags().Int("max-words", 0, "Word-count ceiling (default: 30)")

	sampleCmd.Flags().IntP("per-level", "n", sample.DefaultPerLevel, "Sentences to draw per level")
	sampleCmd.Flags().Int64("seed", sample.DefaultSeed, "Random seed for the draw")
	sampleCmd.Flags().String("db", "", "Sample from a SQLite database instead of a TSV file")

	summaryCmd.Flags().Bool("words", false, "Count words instead of tokens")
	summaryCmd.Flags().Bool("characters", false, "Count characters instead of tokens")
	summaryCmd.MarkFlagsMutuallyExclusive("words", "characters")

	rootCmd.AddCommand(gradeCmd, inspectCmd, filterCmd, sampleCmd, summaryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
