package creator

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/w-h-a/persona/blobstore"
	"github.com/w-h-a/persona/cardstore"
	"github.com/w-h-a/persona/media"
)

type Service struct {
	cards cardstore.CardStore
	blobs blobstore.BlobStore
}

// CreateCharacter resolves the avatar, writes the blob, then writes the card.
// The blob write strictly precedes the card write, so a stored card never
// references a key that was not written. A failure after the blob write may
// leave an unreferenced blob behind; that is acceptable, the reverse is not.
func (s *Service) CreateCharacter(ctx context.Context, data cardstore.CharacterData, avatar media.AvatarSource) (cardstore.CharacterCard, error) {
	if len(strings.TrimSpace(data.Name)) == 0 {
		return cardstore.CharacterCard{}, fmt.Errorf("%w: name is required", cardstore.ErrInvalidCard)
	}

	if len(strings.TrimSpace(data.Personality)) == 0 {
		return cardstore.CharacterCard{}, fmt.Errorf("%w: personality is required", cardstore.ErrInvalidCard)
	}

	id := uuid.New().String()

	asset, err := s.resolveAvatar(ctx, id, avatar)
	if err != nil {
		return cardstore.CharacterCard{}, err
	}

	avatarKey := ""
	if asset != nil {
		avatarKey = id + ".png"
		if err := s.blobs.Put(ctx, avatarKey, asset.Data, asset.MimeType); err != nil {
			return cardstore.CharacterCard{}, fmt.Errorf("failed to store avatar: %w", err)
		}
	}

	card, err := cardstore.NewCard(id, data, avatarKey)
	if err != nil {
		return cardstore.CharacterCard{}, err
	}

	if err := s.cards.Create(ctx, card); err != nil {
		return cardstore.CharacterCard{}, err
	}

	return card, nil
}

func (s *Service) GetCharacter(ctx context.Context, id string) (cardstore.CharacterCard, error) {
	return s.cards.Get(ctx, id)
}

func (s *Service) ListCharacters(ctx context.Context) ([]cardstore.CharacterCard, error) {
	return s.cards.List(ctx)
}

// GetAvatar returns the stored portrait for a character. Characters on the
// default avatar report blobstore.ErrNotFound.
func (s *Service) GetAvatar(ctx context.Context, id string) (blobstore.Blob, error) {
	card, err := s.cards.Get(ctx, id)
	if err != nil {
		return blobstore.Blob{}, err
	}

	if card.AvatarKey == cardstore.DefaultAvatarKey {
		return blobstore.Blob{}, blobstore.ErrNotFound
	}

	return s.blobs.Get(ctx, card.AvatarKey)
}

func (s *Service) resolveAvatar(ctx context.Context, id string, avatar media.AvatarSource) (*media.Asset, error) {
	filename := id + ".png"

	switch {
	case avatar.Upload != nil:
		asset := *avatar.Upload
		asset.Filename = filename
		return &asset, nil
	case len(avatar.GeneratedURL) > 0:
		asset, err := media.FromURL(ctx, avatar.GeneratedURL, filename)
		if err != nil {
			return nil, err
		}
		return &asset, nil
	case len(avatar.GeneratedData) > 0:
		asset := media.FromInline(avatar.GeneratedData, filename)
		return &asset, nil
	default:
		return nil, nil
	}
}

func New(cards cardstore.CardStore, blobs blobstore.BlobStore) *Service {
	if cards == nil {
		panic("card store is required")
	}

	if blobs == nil {
		panic("blob store is required")
	}

	return &Service{
		cards: cards,
		blobs: blobs,
	}
}
