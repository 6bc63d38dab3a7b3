package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the directories the application reads and writes.
type Paths struct {
	DataDir    string
	ResultsDir string
	LogsDir    string
}

// NewPaths builds a Paths from configuration, resolving relative
// directories against the working directory.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	resolve := func(dir string) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(wd, dir)
	}

	return &Paths{
		DataDir:    resolve(cfg.DataDir),
		ResultsDir: resolve(cfg.ResultsDir),
		LogsDir:    resolve(cfg.LogsDir),
	}, nil
}

// EnsureDirectories creates every managed directory that does not
// already exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ResultsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetDataPath returns a file path inside the data directory.
func (p *Paths) GetDataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetResultPath returns a file path inside the results directory.
func (p *Paths) GetResultPath(filename string) string {
	return filepath.Join(p.ResultsDir, filename)
}

// GetLogPath returns a file path inside the logs directory.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
