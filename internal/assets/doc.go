// Package assets provides the CSS style and HTML templates of playbook
// output.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom FilesystemLoader first and falls back to
// EmbeddedLoader when an asset is not found, so a deployment can override
// the stylesheet alone and keep the built-in templates.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # e.g. playbook.css
//	└── templates/
//	    └── {name}/
//	        ├── cover.html       # Cover page (html/template, render.CoverData)
//	        └── document.html    # Document shell (html/template, render.ShellData)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
