package posts

import (
	"html/template"
	"time"
)

// displayLayout matches the long-form date shown on rendered pages.
const displayLayout = "January 02, 2006"

// Post is a single blog entry backed by a Markdown file on disk. Instances
// are rebuilt on every load and never mutated afterwards.
type Post struct {
	// Slug is the URL-safe identifier derived from the file name,
	// unique within the posts directory.
	Slug string
	// Title comes from frontmatter, falling back to a humanised slug.
	Title string
	// Date comes from frontmatter, falling back to the file modification time.
	Date time.Time
	// Summary is the frontmatter summary or the truncated first paragraph.
	Summary string
	Tags    []string
	Author  string
	// Draft posts are excluded from listings.
	Draft bool
	// Body holds the raw Markdown without the frontmatter block.
	Body []byte
	// HTML is the rendered body, safe to inject into templates.
	HTML template.HTML
	// SourcePath is the file path relative to the posts directory.
	SourcePath string
	// LastModified is the file modification time.
	LastModified time.Time
}

// DateDisplay formats the post date for page rendering.
func (p *Post) DateDisplay() string {
	return p.Date.Format(displayLayout)
}
