package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Load returns the named prefab file, preferring the copy under prefabs/ on
// disk so edits are picked up without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}

// DiskPath returns the on-disk copy of name under prefabs/, or "" when only
// the embedded copy exists.
func DiskPath(name string) string {
	p := diskPrefabPath(cleanPrefabPath(name))
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p
	}
	return ""
}
