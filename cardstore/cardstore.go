package cardstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a requested card does not exist.
	ErrNotFound = errors.New("character not found")
	// ErrDuplicateID is returned when a card with the same id already exists.
	ErrDuplicateID = errors.New("character id already exists")
	// ErrInvalidCard is returned when a card fails validation at construction.
	ErrInvalidCard = errors.New("invalid character card")
)

// CardStore is append-only keyed storage of character cards. It performs no
// network or blob I/O; the avatar key it is handed is already resolved.
type CardStore interface {
	Create(ctx context.Context, card CharacterCard) error
	Get(ctx context.Context, id string) (CharacterCard, error)
	List(ctx context.Context) ([]CharacterCard, error)
}
