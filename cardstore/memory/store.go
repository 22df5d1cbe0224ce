package memory

import (
	"context"
	"sync"

	"github.com/w-h-a/persona/cardstore"
)

type memoryStore struct {
	options cardstore.Options
	cards   map[string]cardstore.CharacterCard
	order   []string
	mtx     sync.RWMutex
}

func (s *memoryStore) Create(ctx context.Context, card cardstore.CharacterCard) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, exists := s.cards[card.Id]; exists {
		return cardstore.ErrDuplicateID
	}

	s.cards[card.Id] = card
	s.order = append(s.order, card.Id)

	return nil
}

func (s *memoryStore) Get(ctx context.Context, id string) (cardstore.CharacterCard, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	card, ok := s.cards[id]
	if !ok {
		return cardstore.CharacterCard{}, cardstore.ErrNotFound
	}

	return card, nil
}

func (s *memoryStore) List(ctx context.Context) ([]cardstore.CharacterCard, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	cards := make([]cardstore.CharacterCard, 0, len(s.order))
	for _, id := range s.order {
		cards = append(cards, s.cards[id])
	}

	return cards, nil
}

func NewStore(opts ...cardstore.Option) cardstore.CardStore {
	options := cardstore.NewOptions(opts...)

	s := &memoryStore{
		options: options,
		cards:   map[string]cardstore.CharacterCard{},
		order:   []string{},
		mtx:     sync.RWMutex{},
	}

	return s
}
