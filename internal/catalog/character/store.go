package character

import "context"

type Repository interface {
	ListCharacters(context context.Context, f Filter, limit, offset int) ([]*Character, int64, error)
	GetCharacter(context context.Context, id string) (*Character, error)
	CreateCharacter(context context.Context, c *Character) error
	UpdateCharacter(context context.Context, c *Character) error
	DeleteCharacter(context context.Context, id string) error
}
