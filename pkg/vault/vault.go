// Package vault scans a directory of markdown notes and filters them by day.
package vault

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/HighPriest/ob-daily-summary/models"
)

// Directories never scanned for notes.
var skipDirs = map[string]bool{
	".git":         true,
	".obsidian":    true,
	".trash":       true,
	"node_modules": true,
}

type Vault struct {
	root string
}

// New opens a vault rooted at dir. The path is normalized and must name an
// existing directory.
func New(dir string) (*Vault, error) {
	root, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vault path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path %s is not a directory", root)
	}

	return &Vault{root: root}, nil
}

// Root returns the normalized vault root.
func (v *Vault) Root() string {
	return v.root
}

// SelectByDate walks the vault and returns the notes created or modified on
// the given day key. Zero matches is not an error.
func (v *Vault) SelectByDate(date string) ([]models.Note, error) {
	var notes []models.Note

	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != v.root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		note := models.Note{
			Name:       strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			Path:       path,
			CreatedAt:  createdAt(path, info.ModTime()),
			ModifiedAt: info.ModTime(),
		}
		if note.MatchesDate(date) {
			notes = append(notes, note)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan vault: %w", err)
	}

	return notes, nil
}

// ReadNote returns the full text of a note.
func (v *Vault) ReadNote(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// frontmatter is the subset of note frontmatter the scanner cares about.
type frontmatter struct {
	Created string `yaml:"created"`
}

// Timestamp layouts accepted in a note's created field.
var createdLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

const frontmatterProbeSize = 4096

// createdAt returns the note's creation time from its frontmatter created
// field, falling back to the modification time. File birth times are not
// portably available, so the frontmatter convention is the source of truth.
func createdAt(path string, fallback time.Time) time.Time {
	head, err := readHead(path, frontmatterProbeSize)
	if err != nil {
		return fallback
	}

	block, ok := frontmatterBlock(head)
	if !ok {
		return fallback
	}

	var fm frontmatter
	if err := yaml.Unmarshal(block, &fm); err != nil || fm.Created == "" {
		return fallback
	}

	for _, layout := range createdLayouts {
		if ts, err := time.ParseInLocation(layout, fm.Created, time.Local); err == nil {
			return ts
		}
	}
	return fallback
}

// readHead reads at most n bytes from the start of a file.
func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:read], nil
}

// frontmatterBlock extracts the YAML between the leading --- delimiters.
func frontmatterBlock(head []byte) ([]byte, bool) {
	text := strings.ReplaceAll(string(head), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return nil, false
	}

	rest := text[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, false
	}
	return []byte(rest[:end]), true
}
