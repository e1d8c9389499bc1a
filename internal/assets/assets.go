package assets

var defaultLoader = NewEmbeddedLoader()

// LoadTemplateSet loads a built-in template set by name. The renderer uses
// it for the cover template when no custom set is configured.
func LoadTemplateSet(name string) (*TemplateSet, error) {
	return defaultLoader.LoadTemplateSet(name)
}
