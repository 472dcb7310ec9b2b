/*
Package content serves the editorial side of the site: blog posts and news
announcements authored as markdown files with YAML front matter.

Articles are loaded from disk once at startup and kept in memory; the
catalogue is small and changes only on deploy.
*/
package content

import "time"

// Kind partitions articles into their editorial sections.
type Kind string

const (
	KindBlog Kind = "blog"
	KindNews Kind = "news"
)

// Article is a single editorial entry.
type Article struct {
	Slug        string    `json:"slug"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Author      string    `json:"author"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"body"`
}
