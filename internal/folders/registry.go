package folders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/strem2jelly/telegram-media-bridge/internal/utils"
)

const (
	// DefaultFolderName is the on-disk name of the fallback folder.
	DefaultFolderName = "no_cat"
	// DefaultDisplayName is what users see instead of DefaultFolderName.
	DefaultDisplayName = "No Category"
)

// reservedNames are menu keywords a folder must not collide with.
var reservedNames = []string{
	"create folder",
	"select folder",
	"cancel",
	"back to main menu",
	"no category",
	"main menu",
}

// Registry resolves, creates and lists destination folders under the
// media root.
type Registry struct {
	root string
}

func NewRegistry(root string) *Registry {
	return &Registry{root: root}
}

// DefaultPath returns the path of the default ("No Category") folder.
func (r *Registry) DefaultPath() string {
	return filepath.Join(r.root, DefaultFolderName)
}

// EnsureDefault creates the default folder if it does not exist.
func (r *Registry) EnsureDefault() error {
	return os.MkdirAll(r.DefaultPath(), 0o755)
}

// IsReserved reports whether name is a reserved keyword or contains
// the "menu" substring, case-insensitively.
func IsReserved(name string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, "menu") {
		return true
	}
	for _, reserved := range reservedNames {
		if lower == reserved {
			return true
		}
	}
	return false
}

// Resolve maps a folder name to its absolute path. The display name of
// the default folder resolves to the default path.
func (r *Registry) Resolve(name string) string {
	if name == DefaultDisplayName {
		return r.DefaultPath()
	}
	return filepath.Join(r.root, name)
}

// DisplayName maps a folder path back to the name shown to users.
func (r *Registry) DisplayName(path string) string {
	base := filepath.Base(path)
	if base == DefaultFolderName {
		return DefaultDisplayName
	}
	return base
}

// Create creates the folder, returning its path and whether it was
// newly created. Reserved names are rejected; creating an existing
// folder is not an error.
func (r *Registry) Create(name string) (path string, created bool, err error) {
	if IsReserved(name) {
		return "", false, fmt.Errorf("%w: %s", utils.ErrReservedName, name)
	}

	path = filepath.Join(r.root, name)
	if _, statErr := os.Stat(path); statErr == nil {
		return path, false, nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create folder %q: %w", name, err)
	}
	return path, true, nil
}

// List returns the display names of the immediate subdirectories of
// the media root. Order follows directory enumeration and is not
// guaranteed.
func (r *Registry) List() ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list media root: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if entry.Name() == DefaultFolderName {
			names = append(names, DefaultDisplayName)
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}
