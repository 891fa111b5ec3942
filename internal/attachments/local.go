package attachments

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mindlens/internal/filex"
)

// LocalStore keeps attachments as files under a single directory with
// generated names. The reference is the bare filename.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := filex.EnsureDir(dir); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	name := uuid.New().String() + ext
	if err := filex.WriteFileAtomic(filepath.Join(s.dir, name), data, 0o600); err != nil {
		return "", fmt.Errorf("saving attachment: %w", err)
	}
	return name, nil
}

func (s *LocalStore) Load(_ context.Context, ref string) ([]byte, error) {
	// the reference must stay inside the store directory
	if ref != filepath.Base(ref) || strings.HasPrefix(ref, ".") {
		return nil, fmt.Errorf("invalid attachment reference %q", ref)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if err != nil {
		return nil, fmt.Errorf("loading attachment: %w", err)
	}
	return data, nil
}
