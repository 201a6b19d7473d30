package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/creachadair/atomicfile"
)

// writeJSON encodes v as indented JSON to path, or to stdout when path is
// empty or "-". Files are replaced atomically so a watcher never sees a
// partial write.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := atomicfile.WriteData(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
