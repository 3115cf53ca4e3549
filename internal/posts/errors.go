package posts

import "errors"

var (
	ErrPostNotFound    = errors.New("posts: post not found")
	ErrSlugInvalid     = errors.New("posts: slug contains invalid characters")
	ErrServiceRequired = errors.New("posts: markdown service is required")
)
