package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArticle(t *testing.T, root string, kind Kind, name, body string) {
	t.Helper()

	dir := filepath.Join(root, string(kind))
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestFileRepositoryLoadsAndSortsArticles(t *testing.T) {
	root := t.TempDir()

	writeArticle(t, root, KindBlog, "older-post.md", `---
title: "An Older Post"
summary: "First words"
author: "editorial"
published_at: 2026-01-10T00:00:00Z
tags: [announcements]
---
Old body.
`)
	writeArticle(t, root, KindBlog, "newer-post.md", `---
title: "A Newer Post"
published_at: 2026-03-05T00:00:00Z
---
New body.
`)
	writeArticle(t, root, KindNews, "launch.md", `---
title: "Launch"
published_at: 2026-02-01T00:00:00Z
---
We launched.
`)

	repository, err := NewFileRepository(root)
	require.NoError(t, err)

	blog := repository.List(KindBlog)
	require.Len(t, blog, 2)
	assert.Equal(t, "newer-post", blog[0].Slug, "newest article first")
	assert.Equal(t, "older-post", blog[1].Slug)
	assert.Equal(t, []string{"announcements"}, blog[1].Tags)
	assert.Equal(t, "Old body.", blog[1].Body)

	news := repository.List(KindNews)
	require.Len(t, news, 1)

	article, ok := repository.Get(KindNews, "launch")
	require.True(t, ok)
	assert.Equal(t, "We launched.", article.Body)

	_, ok = repository.Get(KindBlog, "launch")
	assert.False(t, ok, "slugs are scoped per section")
}

func TestFileRepositorySkipsDrafts(t *testing.T) {
	root := t.TempDir()

	writeArticle(t, root, KindBlog, "wip.md", `---
title: "Work In Progress"
draft: true
---
Not ready.
`)

	repository, err := NewFileRepository(root)
	require.NoError(t, err)
	assert.Empty(t, repository.List(KindBlog))
}

func TestFileRepositoryAcceptsByteOrderMark(t *testing.T) {
	root := t.TempDir()

	// Windows editors commonly prepend a UTF-8 BOM.
	writeArticle(t, root, KindNews, "bom.md", "\uFEFF---\ntitle: \"With BOM\"\n---\nBody text.\n")

	repository, err := NewFileRepository(root)
	require.NoError(t, err)

	article, ok := repository.Get(KindNews, "bom")
	require.True(t, ok)
	assert.Equal(t, "With BOM", article.Title)
	assert.Equal(t, "Body text.", article.Body)
}

func TestFileRepositoryRejectsMalformedFrontMatter(t *testing.T) {
	root := t.TempDir()

	writeArticle(t, root, KindBlog, "broken.md", "no front matter here")

	_, err := NewFileRepository(root)
	require.Error(t, err)
}

func TestFileRepositoryMissingSectionsAreEmpty(t *testing.T) {
	repository, err := NewFileRepository(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, repository.List(KindBlog))
	assert.Empty(t, repository.List(KindNews))
}
