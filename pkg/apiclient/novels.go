// Copyright (c) 2026 Novaria. All rights reserved.
// Author: dev@novaria.app

package apiclient

import (
	"context"
	"time"
)

// # Wire Types

// NameRef is a named catalogue entity referenced from a novel.
type NameRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Novel is the client-side view of a catalogue novel.
type Novel struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"release_date"`
	CoverImage  string    `json:"cover_image,omitempty"`
	Rating      float64   `json:"rating"`
	Status      string    `json:"status"`
	Authors     []NameRef `json:"authors"`
	Publisher   *NameRef  `json:"publisher,omitempty"`
	Genres      []NameRef `json:"genres"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Review is the client-side view of a novel review.
type Review struct {
	ID        string    `json:"id"`
	NovelID   string    `json:"novel_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// PageMeta mirrors the server's pagination metadata.
type PageMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NovelPage is one page of novels plus its pagination metadata.
type NovelPage struct {
	Novels []Novel
	Meta   PageMeta
}

type novelListEnvelope struct {
	Data []Novel  `json:"data"`
	Meta PageMeta `json:"meta"`
}

type novelEnvelope struct {
	Data Novel `json:"data"`
}

type countEnvelope struct {
	Data struct {
		Count int64 `json:"count"`
	} `json:"data"`
}

// # Operations

// ListNovels fetches one page of the novel catalogue.
func (c *Client) ListNovels(ctx context.Context, page, limit int) (*NovelPage, error) {
	var envelope novelListEnvelope
	if err := c.get(ctx, "/api/v1/novels", pageQuery(page, limit), &envelope); err != nil {
		return nil, err
	}
	return &NovelPage{Novels: envelope.Data, Meta: envelope.Meta}, nil
}

// GetNovel fetches a single novel by ID.
func (c *Client) GetNovel(ctx context.Context, novelID string) (*Novel, error) {
	var envelope novelEnvelope
	if err := c.get(ctx, "/api/v1/novels/"+novelID, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// SearchNovels runs a catalogue search across titles, authors, and genres.
func (c *Client) SearchNovels(ctx context.Context, queryText string, page, limit int) (*NovelPage, error) {
	query := pageQuery(page, limit)
	query.Set("q", queryText)

	var envelope novelListEnvelope
	if err := c.get(ctx, "/api/v1/search", query, &envelope); err != nil {
		return nil, err
	}
	return &NovelPage{Novels: envelope.Data, Meta: envelope.Meta}, nil
}

// NovelCount returns the total number of catalogued novels.
func (c *Client) NovelCount(ctx context.Context) (int64, error) {
	var envelope countEnvelope
	if err := c.get(ctx, "/api/v1/novels/count", nil, &envelope); err != nil {
		return 0, err
	}
	return envelope.Data.Count, nil
}

// ReviewCount returns the total number of reviews.
func (c *Client) ReviewCount(ctx context.Context) (int64, error) {
	var envelope countEnvelope
	if err := c.get(ctx, "/api/v1/reviews/count", nil, &envelope); err != nil {
		return 0, err
	}
	return envelope.Data.Count, nil
}

// ListNovelReviews fetches one page of reviews for a novel.
func (c *Client) ListNovelReviews(ctx context.Context, novelID string, page, limit int) ([]Review, *PageMeta, error) {
	var envelope struct {
		Data []Review `json:"data"`
		Meta PageMeta `json:"meta"`
	}
	if err := c.get(ctx, "/api/v1/novels/"+novelID+"/reviews", pageQuery(page, limit), &envelope); err != nil {
		return nil, nil, err
	}
	return envelope.Data, &envelope.Meta, nil
}
