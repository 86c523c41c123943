package gen

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

// WriteSource formats src with goimports and writes it to path, creating
// the parent directories. The file is replaced as a whole. When src does
// not format, it is written to path+".error" for inspection instead and
// path is left untouched.
func WriteSource(path string, src []byte) error {
	formatted, err := imports.Process(path, src, nil)
	if err != nil {
		// Errors are ignored, the formatting error is the one reported.
		debugPath := path + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, src, 0o644)
		return fmt.Errorf("format %s: %w (unformatted written to %s)", filepath.Base(path), err, debugPath)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
