// Package posts owns the blog's content model: it turns Markdown documents
// discovered on disk into ordered Post records, derives titles, dates, and
// summaries when frontmatter omits them, and resolves individual posts by
// slug.
package posts
