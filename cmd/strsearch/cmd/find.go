package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/corey/strsearch/internal/domain/bench"
	"github.com/corey/strsearch/internal/domain/corpus"
	"github.com/corey/strsearch/internal/domain/search"
	"github.com/spf13/cobra"
)

var (
	findEngine  engineFlags
	findFile    string
	findTime    bool
	findRepeat  int
	findColor   string
	findNoColor bool
)

var findCmd = &cobra.Command{
	Use:   "find <pattern> [text]",
	Short: "Find the first occurrence of a pattern",
	Long: "Runs each algorithm on one text and prints the byte offset of the first match.\n" +
		"The text comes from the argument, --file, or stdin. Exits 1 when the pattern\n" +
		"is not found or the algorithms disagree.",
	Args: cobra.RangeArgs(1, 2),
	RunE: runFind,
}

func init() {
	f := findCmd.Flags()
	findEngine.register(f)
	f.StringVarP(&findFile, "file", "f", "", "Read the text from a file")
	f.BoolVarP(&findTime, "time", "t", false, "Also measure each algorithm")
	f.IntVarP(&findRepeat, "repeat", "r", bench.DefaultRepeat, "Timed trials with --time")
	f.StringVar(&findColor, "color", "auto", "Color output: auto, always, never")
	f.BoolVar(&findNoColor, "no-color", false, "Suppress color output")
}

func runFind(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	text, err := findText(args[1:])
	if err != nil {
		return err
	}
	if err := corpus.CheckText(text, pattern); err != nil {
		return err
	}

	opts, err := findEngine.options()
	if err != nil {
		return err
	}
	algos, err := findEngine.algorithms()
	if err != nil {
		return err
	}
	if algos == nil {
		algos = search.Algorithms()
	}
	engine, err := search.NewEngine(opts...)
	if err != nil {
		return err
	}

	var harness *bench.Harness
	if findTime {
		cfg := bench.DefaultConfig()
		cfg.Repeat = findRepeat
		cfg.Logger = logger
		if harness, err = bench.New(engine, cfg); err != nil {
			return err
		}
	}

	color := resolveColor(findColor, findNoColor)
	p := painter(color)
	fmt.Printf("%s │ pattern %d bytes │ text %s\n",
		p.paint(colorBold, "⚡ find"), len(pattern), describeText(text))

	first, agree := search.NotFound, true
	for i, a := range algos {
		pos := engine.Search(a, text, pattern)
		if err := search.Verify(text, pattern, pos); err != nil {
			return fmt.Errorf("%s: %w", a.Title(), err)
		}
		if i == 0 {
			first = pos
		} else if pos != first {
			agree = false
		}

		line := formatMatch(a.Title(), pos, color)
		if harness != nil {
			rec, err := harness.Measure(text, pattern, a)
			if err != nil {
				return err
			}
			line += fmt.Sprintf("  %s min  %s mean", formatSeconds(rec.Min), formatSeconds(rec.Mean))
		}
		fmt.Println(line)
	}

	if !agree {
		fmt.Fprintln(os.Stderr, p.paint(colorRed, "✗ algorithms disagree"))
		return exitStatus{exitMismatch}
	}
	if first == search.NotFound {
		return exitStatus{exitMismatch}
	}
	return nil
}

// findText resolves the text operand: argument, then --file, then stdin.
func findText(args []string) (string, error) {
	switch {
	case len(args) > 0:
		if findFile != "" {
			return "", fmt.Errorf("give the text as an argument or --file, not both")
		}
		return args[0], nil
	case findFile != "":
		data, err := os.ReadFile(findFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case isStdinPipe():
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("no text: pass it as an argument, with --file, or on stdin")
	}
}
