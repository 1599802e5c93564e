package handlers

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/stilessandgravel/backend/internal/storage"
)

// mediaCacheControl lets browsers and CDNs keep media for 7 days
const mediaCacheControl = "public, max-age=604800"

// filesOnlyFS hides directories and dotfiles so the file server never lists or exposes them
type filesOnlyFS struct {
	root http.FileSystem
}

func (f filesOnlyFS) Open(name string) (http.File, error) {
	for _, segment := range strings.Split(name, "/") {
		if strings.HasPrefix(segment, ".") {
			return nil, fs.ErrNotExist
		}
	}

	file, err := f.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}

	return file, nil
}

// MediaFiles serves files below root under the media mount path
func MediaFiles(root string) http.Handler {
	fileServer := http.FileServer(filesOnlyFS{root: http.Dir(root)})

	return http.StripPrefix(storage.MediaMountPath, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", mediaCacheControl)
		fileServer.ServeHTTP(w, r)
	}))
}
