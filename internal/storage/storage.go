package storage

import (
	"errors"
	"image"
	_ "image/jpeg" // JPEG header decoding
	_ "image/png"  // PNG header decoding
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/stilessandgravel/backend/internal/models"
	_ "golang.org/x/image/webp" // WebP header decoding
)

// SkipFunc is called for every directory that could not be read during a scan
type SkipFunc func(relPath string, err error)

// localStorage gives read access to the media root on the local filesystem
type localStorage struct {
	basePath string
	onSkip   SkipFunc
}

// NewLocalStorage creates a new localStorage instance rooted at basePath
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// OnSkip registers a callback for directories skipped while scanning
func (s *localStorage) OnSkip(fn SkipFunc) {
	s.onSkip = fn
}

// Root returns the media root directory
func (s *localStorage) Root() string {
	return s.basePath
}

// ListMediaFiles walks the media root in lexical order and returns the
// slash-separated relative path of every allow-listed media file.
//
// A missing root yields an empty list. Unreadable directories are skipped.
// Symlinked files are listed; symlinked directories are not followed.
func (s *localStorage) ListMediaFiles() ([]string, error) {
	info, err := os.Stat(s.basePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return []string{}, nil
	}

	files := []string{}
	err = filepath.WalkDir(s.basePath, func(fullPath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if fullPath == s.basePath {
				return walkErr
			}
			s.skip(fullPath, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !s.isRegularFile(fullPath, d) {
			return nil
		}
		if !models.IsMediaExtension(filepath.Ext(d.Name())) {
			return nil
		}

		rel, err := filepath.Rel(s.basePath, fullPath)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// isRegularFile reports whether the entry is a regular file or a symlink
// that resolves to one. Broken links and links to directories are ignored.
func (s *localStorage) isRegularFile(fullPath string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(fullPath)
	return err == nil && info.Mode().IsRegular()
}

// ImageConfig decodes only the header of an image under the media root and
// returns its pixel dimensions
func (s *localStorage) ImageConfig(relPath string) (int, int, error) {
	file, err := os.Open(s.resolve(relPath))
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// resolve converts a slash-separated relative path to a filesystem path
// below the media root
func (s *localStorage) resolve(relPath string) string {
	cleaned := path.Clean("/" + relPath)
	return filepath.Join(s.basePath, filepath.FromSlash(cleaned))
}

func (s *localStorage) skip(fullPath string, err error) {
	if s.onSkip == nil {
		return
	}
	rel, relErr := filepath.Rel(s.basePath, fullPath)
	if relErr != nil {
		rel = fullPath
	}
	s.onSkip(filepath.ToSlash(rel), err)
}
