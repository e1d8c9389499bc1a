package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader reads styles and template sets from a team's asset
// directory laid out as styles/<name>.css and templates/<name>/*.html.
type FilesystemLoader struct {
	root string
}

// NewFilesystemLoader returns ErrInvalidBasePath unless root is a readable
// directory. Symlinks in root itself are resolved once so containment checks
// compare real paths.
func NewFilesystemLoader(root string) (*FilesystemLoader, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{root: abs}, nil
}

// LoadStyle reads styles/<name>.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := f.read("styles", name+".css")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadTemplateSet reads the cover and document templates of
// templates/<name>/. A set with neither file does not exist; a set with one
// of them is incomplete.
func (f *FilesystemLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	parts := [2]string{coverFile, documentFile}
	var found [2][]byte
	var missing []string
	for i, file := range parts {
		data, err := f.read("templates", name, file)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, file)
		case err != nil:
			return nil, err
		default:
			found[i] = data
		}
	}

	switch len(missing) {
	case 0:
		return &TemplateSet{Name: name, Cover: string(found[0]), Document: string(found[1])}, nil
	case len(parts):
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	default:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, missing[0])
	}
}

// read loads a file below the root after checking that, with symlinks
// resolved, it still lives inside the root. Missing files surface as
// fs.ErrNotExist; other failures wrap ErrAssetRead or ErrPathTraversal.
func (f *FilesystemLoader) read(elem ...string) ([]byte, error) {
	path := filepath.Join(append([]string{f.root}, elem...)...)
	if err := f.contains(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- contained in root
	if errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrAssetRead, filepath.Base(path), err)
	}
	return data, nil
}

// contains rejects paths that resolve outside the root. A path that does not
// exist yet is checked as written; the read that follows reports it missing.
func (f *FilesystemLoader) contains(path string) error {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	if !strings.HasPrefix(path, f.root+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

var _ AssetLoader = (*FilesystemLoader)(nil)
