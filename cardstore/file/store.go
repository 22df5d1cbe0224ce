package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/w-h-a/persona/cardstore"
)

const manifestFile = "manifest.json"

// fileStore persists one <id>.json per card plus a manifest recording
// insertion order.
type fileStore struct {
	options cardstore.Options
	dir     string
	order   []string
	mtx     sync.Mutex
}

func (s *fileStore) Create(ctx context.Context, card cardstore.CharacterCard) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	path := s.cardPath(card.Id)

	if _, err := os.Stat(path); err == nil {
		return cardstore.ErrDuplicateID
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat card %s: %w", card.Id, err)
	}

	bs, err := json.MarshalIndent(card, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, bs, 0o644); err != nil {
		return fmt.Errorf("failed to write card %s: %w", card.Id, err)
	}

	s.order = append(s.order, card.Id)

	return s.saveManifest()
}

func (s *fileStore) Get(ctx context.Context, id string) (cardstore.CharacterCard, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.read(id)
}

func (s *fileStore) List(ctx context.Context) ([]cardstore.CharacterCard, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cards := make([]cardstore.CharacterCard, 0, len(s.order))

	for _, id := range s.order {
		card, err := s.read(id)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

func (s *fileStore) read(id string) (cardstore.CharacterCard, error) {
	bs, err := os.ReadFile(s.cardPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return cardstore.CharacterCard{}, cardstore.ErrNotFound
	} else if err != nil {
		return cardstore.CharacterCard{}, fmt.Errorf("failed to read card %s: %w", id, err)
	}

	var card cardstore.CharacterCard
	if err := json.Unmarshal(bs, &card); err != nil {
		return cardstore.CharacterCard{}, fmt.Errorf("failed to decode card %s: %w", id, err)
	}

	return card, nil
}

func (s *fileStore) cardPath(id string) string {
	return filepath.Join(s.dir, filepath.Base(id)+".json")
}

func (s *fileStore) saveManifest() error {
	bs, err := json.Marshal(s.order)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, manifestFile), bs, 0o644)
}

func (s *fileStore) loadManifest() error {
	bs, err := os.ReadFile(filepath.Join(s.dir, manifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	return json.Unmarshal(bs, &s.order)
}

func NewStore(opts ...cardstore.Option) (cardstore.CardStore, error) {
	options := cardstore.NewOptions(opts...)

	if len(options.Location) == 0 {
		return nil, errors.New("location is required")
	}

	if err := os.MkdirAll(options.Location, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create card directory: %w", err)
	}

	s := &fileStore{
		options: options,
		dir:     options.Location,
		order:   []string{},
	}

	if err := s.loadManifest(); err != nil {
		return nil, fmt.Errorf("failed to load card manifest: %w", err)
	}

	return s, nil
}
