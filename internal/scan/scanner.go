// Package scan discovers candidate documents with a bounded
// depth-first traversal: a hard result cap, a depth limit, and a
// directory denylist keep runaway trees from flooding the pipeline.
package scan

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dealscan/dealscan/constants"
)

// FileInfo describes one discovered document.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Config bounds a traversal.
type Config struct {
	Extensions map[string]struct{} // defaults to constants.AllowedExtensions
	MaxDepth   int                 // default 5
	Denylist   []string            // defaults to DefaultDenylist
}

// DefaultDenylist holds directory-name substrings that are never worth
// descending into: build artifacts, version-control metadata, caches
// and OS system folders. Matched case-insensitively, directories only.
var DefaultDenylist = []string{
	"node_modules",
	".git",
	".svn",
	"__pycache__",
	"build",
	"dist",
	"target",
	"cache",
	"system volume information",
	"windows",
	"program files",
	"appdata",
}

type Scanner struct {
	cfg    Config
	logger *slog.Logger
}

func NewScanner(cfg Config, logger *slog.Logger) *Scanner {
	if cfg.Extensions == nil {
		cfg.Extensions = constants.AllowedExtensions
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 5
	}
	if cfg.Denylist == nil {
		cfg.Denylist = DefaultDenylist
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{cfg: cfg, logger: logger}
}

// Scan collects at most maxFiles matching files under root, never
// deeper than MaxDepth. Unreadable entries are skipped; a read failure
// on one entry never aborts its siblings.
func (s *Scanner) Scan(root string, maxFiles int) []FileInfo {
	if maxFiles <= 0 {
		return nil
	}
	return s.walk(root, 0, maxFiles)
}

// walk returns up to budget files from dir. The budget is threaded by
// value: each subdirectory receives what is left after earlier results,
// so sibling subtrees can never collectively exceed the original cap.
func (s *Scanner) walk(dir string, depth, budget int) []FileInfo {
	if depth > s.cfg.MaxDepth || budget <= 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Debug("scan.dir_unreadable", "dir", dir, "error", err)
		return nil
	}

	var found []FileInfo

	// Files first: shallow, likely-relevant results surface even when
	// the budget runs out mid-traversal.
	for _, entry := range entries {
		if len(found) >= budget {
			return found
		}
		if entry.IsDir() || hiddenName(entry.Name()) {
			continue
		}
		ext := constants.NormalizeExt(filepath.Ext(entry.Name()))
		if _, ok := s.cfg.Extensions[ext]; !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			s.logger.Debug("scan.stat_failed", "path", filepath.Join(dir, entry.Name()), "error", err)
			continue
		}
		found = append(found, FileInfo{
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	for _, entry := range entries {
		if len(found) >= budget {
			break
		}
		if !entry.IsDir() || hiddenName(entry.Name()) || s.denied(entry.Name()) {
			continue
		}
		sub := s.walk(filepath.Join(dir, entry.Name()), depth+1, budget-len(found))
		found = append(found, sub...)
	}

	return found
}

// hiddenName reports hidden or system-prefixed entries.
func hiddenName(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasPrefix(name, "$") ||
		strings.HasPrefix(name, "~")
}

// denied is consulted for directory entries only, never for files.
func (s *Scanner) denied(name string) bool {
	lower := strings.ToLower(name)
	for _, substr := range s.cfg.Denylist {
		if strings.Contains(lower, substr) {
			return true
		}
	}
	return false
}
