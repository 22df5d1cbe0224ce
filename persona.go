package persona

import (
	"context"

	"github.com/w-h-a/persona/blobstore"
	"github.com/w-h-a/persona/cardstore"
	"github.com/w-h-a/persona/imagegen"
	"github.com/w-h-a/persona/internal/service/creator"
	"github.com/w-h-a/persona/media"
)

// Kit is the entry point for hosting applications: character creation and
// retrieval plus the image generation adapter, over injected stores.
type Kit struct {
	creator   *creator.Service
	generator imagegen.Generator
}

func (k *Kit) CreateCharacter(ctx context.Context, data cardstore.CharacterData, avatar media.AvatarSource) (cardstore.CharacterCard, error) {
	return k.creator.CreateCharacter(ctx, data, avatar)
}

func (k *Kit) GetCharacter(ctx context.Context, id string) (cardstore.CharacterCard, error) {
	return k.creator.GetCharacter(ctx, id)
}

func (k *Kit) ListCharacters(ctx context.Context) ([]cardstore.CharacterCard, error) {
	return k.creator.ListCharacters(ctx)
}

func (k *Kit) GetAvatar(ctx context.Context, id string) (blobstore.Blob, error) {
	return k.creator.GetAvatar(ctx, id)
}

func (k *Kit) GenerateImage(ctx context.Context, req imagegen.Request) imagegen.Result {
	if k.generator == nil {
		return imagegen.Failure("image generator is not configured")
	}
	return k.generator.Generate(ctx, req)
}

func (k *Kit) GenerateCharacterAvatar(ctx context.Context, name string, appearance string, apiKey string, baseUrl string) imagegen.Result {
	if k.generator == nil {
		return imagegen.Failure("image generator is not configured")
	}
	return imagegen.GenerateCharacterAvatar(ctx, k.generator, name, appearance, apiKey, baseUrl)
}

func (k *Kit) GenerateSceneIllustration(ctx context.Context, description string, apiKey string, baseUrl string) imagegen.Result {
	if k.generator == nil {
		return imagegen.Failure("image generator is not configured")
	}
	return imagegen.GenerateSceneIllustration(ctx, k.generator, description, apiKey, baseUrl)
}

func New(cards cardstore.CardStore, blobs blobstore.BlobStore, generator imagegen.Generator) *Kit {
	svc := creator.New(cards, blobs)

	kit := &Kit{
		creator:   svc,
		generator: generator,
	}

	return kit
}
