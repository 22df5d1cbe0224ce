package persona_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/persona"
	blobmemory "github.com/w-h-a/persona/blobstore/memory"
	"github.com/w-h-a/persona/cardstore"
	cardmemory "github.com/w-h-a/persona/cardstore/memory"
	"github.com/w-h-a/persona/imagegen"
	"github.com/w-h-a/persona/media"
)

func TestKit_CreateAndFetch(t *testing.T) {
	ctx := context.Background()
	kit := persona.New(cardmemory.NewStore(), blobmemory.NewStore(), nil)

	card, err := kit.CreateCharacter(ctx, cardstore.CharacterData{
		Name:        "Mira",
		Personality: "stoic",
	}, media.AvatarSource{})
	require.NoError(t, err)

	got, err := kit.GetCharacter(ctx, card.Id)
	require.NoError(t, err)
	assert.Equal(t, card, got)

	cards, err := kit.ListCharacters(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestKit_GenerateWithoutGenerator(t *testing.T) {
	ctx := context.Background()
	kit := persona.New(cardmemory.NewStore(), blobmemory.NewStore(), nil)

	result := kit.GenerateImage(ctx, imagegen.Request{Prompt: "p", ApiKey: "k", BaseUrl: "https://api.example.com"})
	assert.False(t, result.Success)
	assert.Equal(t, "image generator is not configured", result.Error)

	result = kit.GenerateCharacterAvatar(ctx, "Mira", "green cloak", "k", "https://api.example.com")
	assert.False(t, result.Success)
}
