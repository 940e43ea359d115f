package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("asset not found")

// DiskStore keeps uploaded binaries in a single flat directory. Stored
// names are generated server-side, the client filename is kept by callers
// as display metadata only.
type DiskStore struct {
	Root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create asset directory: %w", err)
	}
	return &DiskStore{Root: root}, nil
}

func (s *DiskStore) Store(originalFilename string, r io.Reader) (string, error) {
	name := uuid.NewString() + normalizeExt(originalFilename)

	f, err := os.OpenFile(filepath.Join(s.Root, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("cannot create asset file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("cannot write asset file: %w", err)
	}
	return name, nil
}

func (s *DiskStore) Fetch(name string) ([]byte, error) {
	// Stored names are flat, anything with a separator never came from Store.
	if name == "" || filepath.Base(name) != name {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.Root, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cannot read asset file: %w", err)
	}
	return data, nil
}

func normalizeExt(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalFilename)))
	if ext == "." || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}
