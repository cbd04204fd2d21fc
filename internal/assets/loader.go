package assets

// Layout names every built-in design provides.
const (
	LayoutCover     = "cover"
	LayoutChapter   = "chapter"
	LayoutPage      = "page"
	LayoutTOC       = "toc"
	LayoutBackCover = "backcover"
)

// DefaultDesign is the hard-coded fallback design.
const DefaultDesign = "A"

// Loader defines the contract for loading slide designs.
type Loader interface {
	// LoadStyle returns the stylesheet of a design.
	// Returns ErrDesignNotFound if the design doesn't exist.
	LoadStyle(design string) (string, error)

	// LoadLayout returns a Markdown layout of a design (without .md extension).
	// Returns ErrLayoutNotFound if the layout doesn't exist.
	LoadLayout(design, layout string) (string, error)

	// Designs lists the design names available from this loader, sorted.
	Designs() ([]string, error)
}
