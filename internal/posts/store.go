package posts

import (
	"context"
	"fmt"
	"html/template"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	slug "github.com/goliatone/go-slug"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// previewRuneLimit caps the generated summary length, matching the listing
// page layout.
const previewRuneLimit = 200

// CacheConfig controls the optional read-through listing cache. The blog has
// a single writer (the filesystem), so serving a listing up to TTL stale is
// acceptable.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// Store resolves Post records from a Markdown-backed posts directory.
type Store struct {
	markdown *markdown.Service
	cache    CacheConfig
	logger   interfaces.Logger

	mu       sync.RWMutex
	cached   []*Post
	cachedAt time.Time
}

// NewStore constructs a Store over the supplied Markdown service. A nil
// logger silently drops log entries.
func NewStore(svc *markdown.Service, cache CacheConfig, logger interfaces.Logger) (*Store, error) {
	if svc == nil {
		return nil, ErrServiceRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	if cache.Enabled && cache.TTL <= 0 {
		cache.TTL = time.Minute
	}

	return &Store{
		markdown: svc,
		cache:    cache,
		logger:   logger,
	}, nil
}

// List returns every non-draft post ordered by date descending, ties broken
// by file name. Files that cannot be parsed are skipped and logged; duplicate
// slugs keep the first file encountered.
func (s *Store) List(ctx context.Context) ([]*Post, error) {
	if cached, ok := s.fromCache(); ok {
		return cached, nil
	}

	docs, skipped, err := s.markdown.LoadDirectory(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("posts: scan directory: %w", err)
	}

	for _, skip := range skipped {
		s.logger.Warn("posts.skip_unparsable_file", "path", skip.Path, "error", skip.Err)
	}

	seen := map[string]string{}
	out := make([]*Post, 0, len(docs))
	for _, doc := range docs {
		post := buildPost(doc)
		if existing, ok := seen[post.Slug]; ok {
			s.logger.Warn("posts.duplicate_slug",
				"slug", post.Slug,
				"path", doc.FilePath,
				"existing", existing,
			)
			continue
		}
		seen[post.Slug] = doc.FilePath

		if post.Draft {
			continue
		}
		out = append(out, post)
	}

	sortPosts(out)
	s.storeCache(out)
	return out, nil
}

// Get resolves a single post by slug, re-reading its file from disk. Slugs
// that fail validation or match no file yield ErrSlugInvalid or
// ErrPostNotFound respectively.
func (s *Store) Get(ctx context.Context, requested string) (*Post, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" || !slug.IsValid(requested) {
		return nil, ErrSlugInvalid
	}

	doc, err := s.markdown.Load(ctx, requested+".md")
	if err == nil {
		return buildPost(doc), nil
	}
	logging.WithPostContext(s.logger, requested, "").Debug("posts.direct_lookup_miss", "error", err)

	// The file stem may have required normalisation; fall back to the listing.
	posts, listErr := s.List(ctx)
	if listErr != nil {
		return nil, listErr
	}
	for _, post := range posts {
		if post.Slug == requested {
			return post, nil
		}
	}

	return nil, ErrPostNotFound
}

// Invalidate drops the cached listing so the next List re-reads the directory.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.cachedAt = time.Time{}
}

func (s *Store) fromCache() ([]*Post, bool) {
	if !s.cache.Enabled {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil || time.Since(s.cachedAt) > s.cache.TTL {
		return nil, false
	}
	// Posts are immutable once built, so sharing the slice is safe.
	return s.cached, true
}

func (s *Store) storeCache(posts []*Post) {
	if !s.cache.Enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = posts
	s.cachedAt = time.Now()
}

func buildPost(doc *interfaces.Document) *Post {
	stem := strings.TrimSuffix(path.Base(doc.FilePath), path.Ext(doc.FilePath))
	slugValue := stem
	if normalized, err := slug.Normalize(stem); err == nil && normalized != "" {
		slugValue = normalized
	}

	title := strings.TrimSpace(doc.FrontMatter.Title)
	if title == "" {
		title = titleFromSlug(slugValue)
	}

	date, ok := markdown.ParseDate(doc.FrontMatter.Date)
	if !ok {
		date = doc.LastModified
	}

	summary := strings.TrimSpace(doc.FrontMatter.Summary)
	if summary == "" {
		summary = preview(doc.Body)
	}

	return &Post{
		Slug:         slugValue,
		Title:        title,
		Date:         date,
		Summary:      summary,
		Tags:         append([]string(nil), doc.FrontMatter.Tags...),
		Author:       doc.FrontMatter.Author,
		Draft:        doc.FrontMatter.Draft,
		Body:         doc.Body,
		HTML:         template.HTML(doc.BodyHTML),
		SourcePath:   doc.FilePath,
		LastModified: doc.LastModified,
	}
}

func sortPosts(posts []*Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].SourcePath < posts[j].SourcePath
	})
}

// titleFromSlug humanises a slug ("my-first-post" -> "My First Post").
func titleFromSlug(value string) string {
	words := strings.FieldsFunc(value, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// preview extracts the first paragraph of the body and truncates it for the
// listing page.
func preview(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	paragraph := text
	if idx := strings.Index(text, "\n\n"); idx >= 0 {
		paragraph = strings.TrimSpace(text[:idx])
	}

	runes := []rune(paragraph)
	if len(runes) <= previewRuneLimit {
		return paragraph
	}
	return string(runes[:previewRuneLimit]) + "..."
}
