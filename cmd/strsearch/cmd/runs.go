package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/corey/strsearch/internal/app"
	"github.com/corey/strsearch/internal/domain/bench"
	"github.com/corey/strsearch/internal/ports"
	"github.com/spf13/cobra"
)

var (
	runsJSON    bool
	runsOut     string
	runsColor   string
	runsNoColor bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List saved benchmark runs",
	Long:  "Lists runs saved with `strsearch bench --save`. Subcommands show or remove a run.",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a saved run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsRmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"remove"},
	Short:   "Delete saved runs",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRunsRm,
}

func init() {
	pf := runsCmd.PersistentFlags()
	pf.StringVar(&runsColor, "color", "auto", "Color output: auto, always, never")
	pf.BoolVar(&runsNoColor, "no-color", false, "Suppress color output")
	runsShowCmd.Flags().BoolVar(&runsJSON, "json", false, "Print the run as JSON")
	runsShowCmd.Flags().StringVarP(&runsOut, "out", "o", "", "Write the run as JSON to a file")

	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsRmCmd)
}

// openRuns opens the app with the run store and no benchmark configuration.
func openRuns() (*app.App, error) {
	root := projectRoot()
	cfg := bench.DefaultConfig()
	cfg.Logger = logger
	a, err := app.New(app.Config{
		ProjectRoot: root,
		Persist:     true,
		Bench:       cfg,
		Logger:      logger,
	})
	if err != nil {
		if isDBLockError(err) {
			return nil, diagnoseDBLock(app.NewPaths(root).DB)
		}
		return nil, err
	}
	return a, nil
}

func parseRunID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid run id %q", s)
	}
	return id, nil
}

func runRunsList(cmd *cobra.Command, args []string) error {
	a, err := openRuns()
	if err != nil {
		return err
	}
	defer a.Close()

	runs, err := a.Runs()
	if err != nil {
		return err
	}
	fmt.Print(formatRuns(runs, resolveColor(runsColor, runsNoColor)))
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	a, err := openRuns()
	if err != nil {
		return err
	}
	defer a.Close()

	run, err := a.LoadRun(id)
	if err != nil {
		return err
	}
	if runsJSON || runsOut != "" {
		return writeJSON(runsOut, run)
	}
	color := resolveColor(runsColor, runsNoColor)
	fmt.Print(formatRun(run, color))
	fmt.Println()
	fmt.Print(formatSummary(bench.Summarize(run.Table), color))
	if ds := run.Table.Disagreements(); len(ds) > 0 {
		fmt.Println()
		fmt.Print(formatDisagreements(ds, color))
	}
	return nil
}

func runRunsRm(cmd *cobra.Command, args []string) error {
	ids := make([]uint64, len(args))
	for i, s := range args {
		id, err := parseRunID(s)
		if err != nil {
			return err
		}
		ids[i] = id
	}
	a, err := openRuns()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range ids {
		if _, err := a.LoadRun(id); errors.Is(err, ports.ErrRunNotFound) {
			fmt.Fprintf(os.Stderr, "run #%d: not found\n", id)
			continue
		} else if err != nil {
			return err
		}
		if err := a.DeleteRun(id); err != nil {
			return err
		}
		fmt.Printf("removed run #%d\n", id)
	}
	return nil
}
