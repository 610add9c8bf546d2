package logo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedType is returned for uploads outside the extension allow-list.
var ErrUnsupportedType = errors.New("only PNG, JPG, JPEG files allowed")

// logoStem is the well-known name the single institutional logo is stored
// under, independent of the original upload name.
const logoStem = "college_logo"

// resolveOrder is the fixed priority when locating the stored logo.
var resolveOrder = []string{"png", "jpg", "jpeg"}

// Store keeps at most one institutional logo on disk. Uploads overwrite the
// slot; JPEG variants are re-encoded so that exactly one canonical PNG
// remains. The mutex keeps a concurrent Resolve from observing a
// half-canonicalized slot.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// New creates a logo store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save persists the uploaded logo bytes declared with the given extension
// and returns the canonical stored file name. JPEG uploads are re-encoded
// to PNG and the intermediate file removed.
func (s *Store) Save(data []byte, declaredExt string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(declaredExt), "."))
	switch ext {
	case "png", "jpg", "jpeg":
	default:
		return "", ErrUnsupportedType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	// Overwrite the slot: drop every stale variant before writing.
	for _, old := range resolveOrder {
		_ = os.Remove(s.path(old))
	}

	rawPath := s.path(ext)
	if err := os.WriteFile(rawPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write logo: %w", err)
	}

	if ext == "jpg" || ext == "jpeg" {
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			_ = os.Remove(rawPath)
			return "", fmt.Errorf("decode jpeg logo: %w", err)
		}
		if err := imaging.Save(img, s.path("png")); err != nil {
			_ = os.Remove(rawPath)
			return "", fmt.Errorf("convert logo to png: %w", err)
		}
		if err := os.Remove(rawPath); err != nil {
			return "", fmt.Errorf("remove jpeg original: %w", err)
		}
	}

	return logoStem + ".png", nil
}

// Exists reports whether any recognized logo file is present.
func (s *Store) Exists() bool {
	_, ok := s.Resolve()
	return ok
}

// Resolve returns the path of the stored logo, checking the recognized
// names in fixed priority order.
func (s *Store) Resolve() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ext := range resolveOrder {
		path := s.path(ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

func (s *Store) path(ext string) string {
	return filepath.Join(s.dir, logoStem+"."+ext)
}
