/*
Package sitemap renders the XML sitemap for search engines.

The catalogue can exceed the 50,000-URL limit of a single sitemap file, so
the root /sitemap.xml is a sitemap index pointing at fixed-size partitions
generated on demand from row counts.
*/
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/novaria/api/internal/platform/apperr"
	"github.com/novaria/api/internal/platform/constants"
)

// NovelEntry is the slice of a novel row a sitemap URL is built from.
type NovelEntry struct {
	ID        string
	Title     string
	UpdatedAt time.Time
}

// ReviewEntry is the slice of a review row a sitemap URL is built from.
type ReviewEntry struct {
	ID        string
	UpdatedAt time.Time
}

// Repository provides the row streams the sitemap partitions are built from.
type Repository interface {
	CountNovels(ctx context.Context) (int64, error)
	ListNovelEntries(ctx context.Context, limit, offset int) ([]NovelEntry, error)
	CountReviews(ctx context.Context) (int64, error)
	ListReviewEntries(ctx context.Context, limit, offset int) ([]ReviewEntry, error)
}

// # XML Documents

// Index is the root sitemap index document.
type Index struct {
	XMLName  xml.Name   `xml:"sitemapindex"`
	XMLNS    string     `xml:"xmlns,attr"`
	Sitemaps []IndexRef `xml:"sitemap"`
}

// IndexRef points at one partition file.
type IndexRef struct {
	Loc string `xml:"loc"`
}

// URLSet is a single sitemap partition document.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is one location entry. Title is a non-standard extension crawlers
// ignore; it is kept for the catalogue's own tooling.
type URL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
	Title   string `xml:"title,omitempty"`
}

const xmlNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// staticPaths are the browsable pages that exist regardless of catalogue
// contents.
var staticPaths = []string{
	"/",
	"/search",
	"/mylist",
	"/novels/new-releases",
	"/novels/popular",
}

// # Service

// Service assembles sitemap documents from the repository and the public
// site address.
type Service struct {
	repository Repository
	baseURL    string
	chunkSize  int
}

func NewService(repository Repository, baseURL string) *Service {
	return &Service{
		repository: repository,
		baseURL:    strings.TrimRight(baseURL, "/"),
		chunkSize:  constants.SitemapChunkSize,
	}
}

// Index lists the static partition plus one entry per chunk of novels and
// reviews.
func (service *Service) Index(ctx context.Context) (*Index, error) {
	index := &Index{XMLNS: xmlNamespace}
	index.Sitemaps = append(index.Sitemaps, service.indexRef("static"))

	novelTotal, err := service.repository.CountNovels(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap_count_novels_failed: %w", err)
	}
	for _, partition := range chunkPartitions("novels", novelTotal, service.chunkSize) {
		index.Sitemaps = append(index.Sitemaps, service.indexRef(partition))
	}

	reviewTotal, err := service.repository.CountReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap_count_reviews_failed: %w", err)
	}
	for _, partition := range chunkPartitions("reviews", reviewTotal, service.chunkSize) {
		index.Sitemaps = append(index.Sitemaps, service.indexRef(partition))
	}

	return index, nil
}

func (service *Service) indexRef(partition string) IndexRef {
	return IndexRef{Loc: service.baseURL + "/sitemaps/" + partition + ".xml"}
}

// Partition resolves a partition name ("static", "novels-0-49999", ...)
// into its URL set. Unknown or out-of-range partitions yield NotFound.
func (service *Service) Partition(ctx context.Context, name string) (*URLSet, error) {
	if name == "static" {
		urlSet := &URLSet{XMLNS: xmlNamespace}
		for _, path := range staticPaths {
			urlSet.URLs = append(urlSet.URLs, URL{Loc: service.baseURL + path})
		}
		return urlSet, nil
	}

	prefix, start, end, err := parsePartition(name)
	if err != nil {
		return nil, apperr.NotFound("Sitemap")
	}

	limit := end - start + 1
	urlSet := &URLSet{XMLNS: xmlNamespace}

	switch prefix {
	case "novels":
		entries, err := service.repository.ListNovelEntries(ctx, limit, start)
		if err != nil {
			return nil, fmt.Errorf("sitemap_list_novels_failed: %w", err)
		}
		for _, entry := range entries {
			urlSet.URLs = append(urlSet.URLs, URL{
				Loc:     service.baseURL + "/novels/" + entry.ID,
				LastMod: lastMod(entry.UpdatedAt),
				Title:   entry.Title,
			})
		}
	case "reviews":
		entries, err := service.repository.ListReviewEntries(ctx, limit, start)
		if err != nil {
			return nil, fmt.Errorf("sitemap_list_reviews_failed: %w", err)
		}
		for _, entry := range entries {
			urlSet.URLs = append(urlSet.URLs, URL{
				Loc:     service.baseURL + "/reviews/" + entry.ID,
				LastMod: lastMod(entry.UpdatedAt),
			})
		}
	default:
		return nil, apperr.NotFound("Sitemap")
	}

	if len(urlSet.URLs) == 0 {
		return nil, apperr.NotFound("Sitemap")
	}
	return urlSet, nil
}

// lastMod renders a timestamp in the W3C datetime form sitemaps expect.
func lastMod(updatedAt time.Time) string {
	if updatedAt.IsZero() {
		return ""
	}
	return updatedAt.UTC().Format(time.RFC3339)
}

// chunkPartitions slices total rows into names like "novels-0-49999".
func chunkPartitions(prefix string, total int64, chunkSize int) []string {
	var partitions []string
	for start := int64(0); start < total; start += int64(chunkSize) {
		end := start + int64(chunkSize) - 1
		if end >= total {
			end = total - 1
		}
		partitions = append(partitions, fmt.Sprintf("%s-%d-%d", prefix, start, end))
	}
	return partitions
}

func parsePartition(name string) (prefix string, start, end int, err error) {
	parts := strings.Split(name, "-")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("malformed partition %q", name)
	}

	start, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, err
	}
	end, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, 0, err
	}
	if start < 0 || end < start {
		return "", 0, 0, fmt.Errorf("invalid range in partition %q", name)
	}
	return parts[0], start, end, nil
}
