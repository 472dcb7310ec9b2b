package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// frontMatter mirrors the YAML header of an article file.
type frontMatter struct {
	Title       string    `yaml:"title"`
	Summary     string    `yaml:"summary"`
	Author      string    `yaml:"author"`
	Tags        []string  `yaml:"tags"`
	PublishedAt time.Time `yaml:"published_at"`
	Draft       bool      `yaml:"draft"`
}

// FileRepository implements [Repository] from markdown files on disk.
//
// Layout under the content root:
//
//	blog/<slug>.md
//	news/<slug>.md
type FileRepository struct {
	articles map[Kind][]*Article
	bySlug   map[Kind]map[string]*Article
}

// NewFileRepository loads every article under root. Draft articles are
// skipped; a malformed file fails the whole load so broken content never
// reaches production silently.
func NewFileRepository(root string) (*FileRepository, error) {
	repository := &FileRepository{
		articles: map[Kind][]*Article{},
		bySlug:   map[Kind]map[string]*Article{},
	}

	for _, kind := range []Kind{KindBlog, KindNews} {
		repository.bySlug[kind] = map[string]*Article{}

		dir := filepath.Join(root, string(kind))
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("content_read_dir_failed %q: %w", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
				continue
			}

			raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
			if err != nil {
				return nil, fmt.Errorf("content_read_file_failed %q: %w", entry.Name(), err)
			}

			article, draft, err := parseArticle(kind, strings.TrimSuffix(entry.Name(), ".md"), raw)
			if err != nil {
				return nil, fmt.Errorf("content_parse_failed %q: %w", entry.Name(), err)
			}
			if draft {
				continue
			}

			repository.articles[kind] = append(repository.articles[kind], article)
			repository.bySlug[kind][article.Slug] = article
		}

		sort.Slice(repository.articles[kind], func(i, j int) bool {
			return repository.articles[kind][i].PublishedAt.After(repository.articles[kind][j].PublishedAt)
		})
	}

	return repository, nil
}

func parseArticle(kind Kind, slug string, raw []byte) (*Article, bool, error) {
	header, body, err := splitFrontMatter(raw)
	if err != nil {
		return nil, false, err
	}

	var meta frontMatter
	if err := yaml.Unmarshal(header, &meta); err != nil {
		return nil, false, fmt.Errorf("invalid front matter: %w", err)
	}

	if meta.Title == "" {
		return nil, false, fmt.Errorf("missing title")
	}

	return &Article{
		Slug:        slug,
		Kind:        kind,
		Title:       meta.Title,
		Summary:     meta.Summary,
		Author:      meta.Author,
		Tags:        meta.Tags,
		PublishedAt: meta.PublishedAt,
		Body:        strings.TrimSpace(string(body)),
	}, meta.Draft, nil
}

// splitFrontMatter separates the leading YAML block from the markdown body.
// Files must start with a "---" line and contain a closing "---" line.
func splitFrontMatter(raw []byte) (header, body []byte, err error) {
	trimmed := bytes.TrimLeft(raw, "\uFEFF\n\r")
	if !bytes.HasPrefix(trimmed, []byte(frontMatterDelimiter)) {
		return nil, nil, fmt.Errorf("missing front matter")
	}

	rest := trimmed[len(frontMatterDelimiter):]
	end := bytes.Index(rest, []byte("\n"+frontMatterDelimiter))
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated front matter")
	}

	header = rest[:end]
	body = rest[end+len(frontMatterDelimiter)+1:]
	if idx := bytes.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = nil
	}
	return header, body, nil
}

func (repository *FileRepository) List(kind Kind) []*Article {
	return repository.articles[kind]
}

func (repository *FileRepository) Get(kind Kind, slug string) (*Article, bool) {
	article, ok := repository.bySlug[kind][slug]
	return article, ok
}
