package levels

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.txt
var LevelsFS embed.FS

// DefaultLevel is the level loaded when no other level is requested.
const DefaultLevel = "level.txt"

// Read returns the raw bytes of the named level. A file on disk takes
// precedence over the embedded copy.
func Read(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	if data, err := os.ReadFile(diskLevelPath(cleanLevelPath(name))); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(cleanLevelPath(name))
}

// DiskPath returns the on-disk file backing name, or "" when the level only
// exists in the embedded FS.
func DiskPath(name string) string {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return name
	}
	p := diskLevelPath(cleanLevelPath(name))
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p
	}
	return ""
}

func cleanLevelPath(path string) string {
	if path == "" {
		return DefaultLevel
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		return after
	}
	return s
}

func diskLevelPath(clean string) string {
	return filepath.Join("levels", filepath.FromSlash(clean))
}
