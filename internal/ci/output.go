package ci

import (
	"fmt"
	"os"
)

// AppendOutput appends key=value to the GITHUB_OUTPUT file when the
// process runs inside GitHub Actions. Outside CI (variable unset) it
// does nothing.
func AppendOutput(key, value string) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open results file: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
		return fmt.Errorf("append output: %w", err)
	}
	return nil
}
