// Package assets provides slide designs: a stylesheet plus a set of
// Markdown base layouts (cover, chapter, page, toc, backcover).
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in designs compiled into the binary
//	    ├── FilesystemLoader  - designs synced into the vault
//	    └── Resolver          - vault first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {design}.css
//	└── templates/
//	    └── {design}/
//	        ├── cover.md
//	        ├── chapter.md
//	        └── {layout}.md
//
// # Security
//
// Design and layout names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
