package host

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/arcade-eggs/internal/core"
	"github.com/vovakirdan/arcade-eggs/internal/engine"
)

// SaveScreenshot renders eng as plain text into dir, ~/.arcade/screenshots
// when empty, and returns the file path.
func SaveScreenshot(eng *engine.Engine, dir string) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("host: screenshot dir: %w", err)
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("host: screenshot dir: %w", err)
	}

	w, h := eng.Field()
	s := core.NewScreen(w, h+engine.HUDRows)
	eng.Render(s)

	name := fmt.Sprintf("%s_%s.txt", eng.Rules().ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(s.String()), 0o600); err != nil {
		return "", fmt.Errorf("host: write screenshot: %w", err)
	}
	return path, nil
}
