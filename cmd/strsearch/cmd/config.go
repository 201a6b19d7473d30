package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/corey/strsearch/internal/app"
	"github.com/corey/strsearch/internal/domain/bench"
	"github.com/corey/strsearch/internal/domain/search"
	"github.com/spf13/cobra"
)

var (
	configColor   string
	configNoColor bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the workspace paths and the default benchmark calibration.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	f := configCmd.Flags()
	f.StringVar(&configColor, "color", "auto", "Color output: auto, always, never")
	f.BoolVar(&configNoColor, "no-color", false, "Suppress color output")
}

func runConfig(cmd *cobra.Command, args []string) error {
	fmt.Print(formatConfig(projectRoot(), resolveColor(configColor, configNoColor)))
	return nil
}

func formatConfig(root string, color bool) string {
	p := painter(color)
	paths := app.NewPaths(root)
	cfg := bench.DefaultConfig()

	dbStatus := p.paint(colorYellow, "✗ none")
	if _, err := os.Stat(paths.DB); err == nil {
		dbStatus = p.paint(colorGreen, "✓ present")
	}

	names := make([]string, 0, len(search.Algorithms()))
	for _, a := range search.Algorithms() {
		names = append(names, a.String())
	}
	steps := make([]string, 0, len(cfg.Steps))
	for _, s := range cfg.Steps {
		steps = append(steps, fmt.Sprintf("≤%d:%d", s.MaxLen, s.Number))
	}
	steps = append(steps, fmt.Sprintf("else:%d", cfg.Fallback))

	var sb strings.Builder
	sb.WriteString(p.paint(colorBold, "⚡ strsearch config") + "\n")
	fmt.Fprintf(&sb, "  Root:        %s\n", root)
	fmt.Fprintf(&sb, "  Workspace:   %s\n", paths.Root)
	fmt.Fprintf(&sb, "  DB:          %s %s\n", paths.DB, dbStatus)
	fmt.Fprintf(&sb, "  Log:         %s\n", paths.BenchLog)
	fmt.Fprintf(&sb, "  Algorithms:  %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&sb, "  Repeat:      %d\n", cfg.Repeat)
	fmt.Fprintf(&sb, "  Calls:       %s\n", strings.Join(steps, " "))
	fmt.Fprintf(&sb, "  Rabin-Karp:  hash %s, base %d, modulus %d\n", search.HashDirect, search.DefaultBase, search.DefaultModulus)
	return sb.String()
}
