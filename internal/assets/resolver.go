package assets

import (
	"errors"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type AssetResolver struct {
	custom   AssetLoader // nil if no custom path configured
	embedded AssetLoader
}

// Bundle is the style and templates needed to build a standalone document.
type Bundle struct {
	CSS       string
	Templates *TemplateSet
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadStyle loads a CSS style, trying the custom loader first if available.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	if r.custom != nil {
		css, err := r.custom.LoadStyle(name)
		if err == nil || !isNotFoundError(err) {
			return css, err
		}
	}
	return r.embedded.LoadStyle(name)
}

// LoadTemplateSet loads a template set, trying the custom loader first if
// available. A set is taken whole from one loader, never mixed.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	if r.custom != nil {
		ts, err := r.custom.LoadTemplateSet(name)
		if err == nil || !isNotFoundError(err) {
			return ts, err
		}
	}
	return r.embedded.LoadTemplateSet(name)
}

// Bundle loads a style and a template set together.
func (r *AssetResolver) Bundle(style, templateSet string) (*Bundle, error) {
	css, err := r.LoadStyle(style)
	if err != nil {
		return nil, err
	}
	ts, err := r.LoadTemplateSet(templateSet)
	if err != nil {
		return nil, err
	}
	return &Bundle{CSS: css, Templates: ts}, nil
}

// isNotFoundError reports whether err means the asset is absent, as opposed
// to invalid or unreadable.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrStyleNotFound) ||
		errors.Is(err, ErrTemplateSetNotFound)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
