package cmd

import (
	"fmt"
	"os"

	"github.com/corey/strsearch/internal/domain/corpus"
	"github.com/spf13/cobra"
)

var sampleOut string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the built-in sample corpus",
	Long: "Writes the built-in sample corpus as JSON, in the format read by `bench --corpus`.\n" +
		"Use it as a starting point for a custom corpus.",
	Args: cobra.NoArgs,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "", "Write to a file instead of stdout")
}

func runSample(cmd *cobra.Command, args []string) error {
	c := corpus.Sample()
	if err := writeJSON(sampleOut, c); err != nil {
		return err
	}
	if sampleOut != "" {
		fmt.Fprintf(os.Stderr, "wrote %d texts, %d patterns to %s\n", c.Len(), c.Pairs(), sampleOut)
	}
	return nil
}
