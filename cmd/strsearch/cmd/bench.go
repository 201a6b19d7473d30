package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/corey/strsearch/internal/adapters/fsnotify"
	"github.com/corey/strsearch/internal/app"
	"github.com/corey/strsearch/internal/domain/bench"
	"github.com/corey/strsearch/internal/domain/corpus"
	"github.com/spf13/cobra"
)

var (
	benchEngine   engineFlags
	benchRepeat   int
	benchCorpus   string
	benchSave     bool
	benchWatch    bool
	benchJSON     bool
	benchOut      string
	benchColor    string
	benchNoColor  bool
	benchProgress bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the search algorithms over a corpus",
	Long: "Measures every (text, pattern, algorithm) triple of a corpus and prints the result table.\n" +
		"Uses the built-in sample corpus unless --corpus names a JSON file of\n" +
		`[{"text": "...", "patterns": ["..."]}].` + "\n" +
		"Exits 1 when algorithms disagree on a match position.",
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	benchEngine.register(f)
	f.IntVarP(&benchRepeat, "repeat", "r", bench.DefaultRepeat, "Timed trials per triple")
	f.StringVarP(&benchCorpus, "corpus", "c", "", "Corpus JSON file (default: built-in sample)")
	f.BoolVar(&benchSave, "save", false, "Save the run to .strsearch/results.db")
	f.BoolVarP(&benchWatch, "watch", "w", false, "Re-run whenever the corpus file changes (requires --corpus)")
	f.BoolVar(&benchJSON, "json", false, "Print the run as JSON")
	f.StringVarP(&benchOut, "out", "o", "", "Also write the run as JSON to a file")
	f.StringVar(&benchColor, "color", "auto", "Color output: auto, always, never")
	f.BoolVar(&benchNoColor, "no-color", false, "Suppress color output")
	f.BoolVar(&benchProgress, "progress", true, "Show progress on stderr when it is a terminal")
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchWatch && benchCorpus == "" {
		return fmt.Errorf("--watch requires --corpus")
	}
	opts, err := benchEngine.options()
	if err != nil {
		return err
	}
	algos, err := benchEngine.algorithms()
	if err != nil {
		return err
	}

	c := corpus.Sample()
	if benchCorpus != "" {
		if c, err = corpus.LoadFile(benchCorpus); err != nil {
			return err
		}
	}

	cfg := bench.DefaultConfig()
	cfg.Repeat = benchRepeat
	cfg.Algorithms = algos
	cfg.Logger = logger
	if benchProgress && !benchJSON && isTTY(os.Stderr) {
		cfg.OnRecord = progressReporter()
	}

	root := projectRoot()
	a, err := app.New(app.Config{
		ProjectRoot: root,
		Persist:     benchSave,
		Bench:       cfg,
		Search:      opts,
		Logger:      logger,
	})
	if err != nil {
		if isDBLockError(err) {
			return diagnoseDBLock(app.NewPaths(root).DB)
		}
		return err
	}
	defer a.Close()

	color := resolveColor(benchColor, benchNoColor) && !benchJSON

	run, err := a.Benchmark(c)
	clearProgress(cfg.OnRecord != nil)
	if err != nil {
		return err
	}
	mismatch := printRun(run, color)

	if !benchWatch {
		if mismatch {
			return exitStatus{exitMismatch}
		}
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	err = a.WatchCorpus(benchCorpus, w, func(run *bench.Run, err error) {
		clearProgress(cfg.OnRecord != nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		printRun(run, color)
	})
	if err != nil {
		w.Stop()
		return err
	}
	fmt.Fprintf(os.Stderr, "watching %s (Ctrl-C to stop)\n", benchCorpus)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	signal.Stop(sigCh)
	return w.Stop()
}

// printRun writes the run to stdout and reports whether any algorithm
// disagreed with the reference position.
func printRun(run *bench.Run, color bool) bool {
	ds := run.Table.Disagreements()
	if benchOut != "" {
		if err := writeJSON(benchOut, run); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	if benchJSON {
		if err := writeJSON("", run); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		return len(ds) > 0
	}
	fmt.Print(formatRun(run, color))
	fmt.Println()
	fmt.Print(formatSummary(bench.Summarize(run.Table), color))
	if len(ds) > 0 {
		fmt.Println()
		fmt.Print(formatDisagreements(ds, color))
	}
	return len(ds) > 0
}

// progressReporter returns an OnRecord hook that rewrites one stderr line.
func progressReporter() func(*bench.Record) {
	n := 0
	return func(r *bench.Record) {
		n++
		fmt.Fprintf(os.Stderr, "\r\033[K  measured %d │ text #%d pattern #%d │ %s",
			n, r.Text, r.Key.Pattern, r.Algorithm.Title())
	}
}

func clearProgress(enabled bool) {
	if enabled {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
}
