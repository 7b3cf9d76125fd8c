package filestore

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// userFilename derives a stable per-user filename from the user's email.
// Records for different users never share a file.
func userFilename(dir, prefix, userEmail, ext string) string {
	sum := md5.Sum([]byte(userEmail))
	hash := hex.EncodeToString(sum[:])[:12]
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", prefix, hash, ext))
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// loadJSONSlice reads the whole log file. A missing file is an empty log.
func loadJSONSlice[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("corrupt log file %s: %w", path, err)
	}
	return items, nil
}

// saveJSONSlice rewrites the log file atomically via a temp file rename,
// so readers never observe a partial record.
func saveJSONSlice[T any](path string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// reversed returns a new slice in reverse order (append order -> most recent first).
func reversed[T any](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}
