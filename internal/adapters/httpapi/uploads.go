package httpapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// UploadStore writes uploaded photos to disk and hands back the public path
// they are served under.
type UploadStore struct {
	dir string
	now func() time.Time
}

func NewUploadStore(dir string) *UploadStore {
	return &UploadStore{dir: dir, now: time.Now}
}

// Save stores the upload as <unix-millis><ext> under the upload dir and
// returns the "/uploads/..." path.
func (u *UploadStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d%s", u.now().UnixMilli(), filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return "/uploads/" + name, nil
}

// Remove deletes a previously saved upload given its "/uploads/..." path.
func (u *UploadStore) Remove(publicPath string) error {
	name := filepath.Base(publicPath)
	return os.Remove(filepath.Join(u.dir, name))
}

// Dir is the on-disk directory uploads are served from.
func (u *UploadStore) Dir() string { return u.dir }
