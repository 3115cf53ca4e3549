// Package markdown turns Markdown files into renderable documents: it splits
// the optional frontmatter block from the body, extracts recognised metadata
// keys, and converts the body into HTML with goldmark.
package markdown
