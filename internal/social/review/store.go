package review

import "context"

type Repository interface {
	ListReviews(context context.Context, f Filter, limit, offset int) ([]*Review, int64, error)
	GetReview(context context.Context, id string) (*Review, error)
	CreateReview(context context.Context, r *Review) error
	UpdateReview(context context.Context, r *Review) error
	DeleteReview(context context.Context, id string) error
	CountReviews(context context.Context) (int64, error)
}
