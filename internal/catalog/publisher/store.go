package publisher

import "context"

type Repository interface {
	ListPublishers(context context.Context, f Filter, limit, offset int) ([]*Publisher, int64, error)
	GetPublisher(context context.Context, id string) (*Publisher, error)
	CreatePublisher(context context.Context, p *Publisher) error
	UpdatePublisher(context context.Context, p *Publisher) error
	DeletePublisher(context context.Context, id string) error
}
