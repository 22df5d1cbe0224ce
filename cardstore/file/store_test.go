package file

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/persona/cardstore"
)

func newTestStore(t *testing.T, dir string) cardstore.CardStore {
	t.Helper()

	store, err := NewStore(cardstore.WithLocation(dir))
	require.NoError(t, err)

	return store
}

func testCard(t *testing.T, id string) cardstore.CharacterCard {
	t.Helper()

	card, err := cardstore.NewCard(id, cardstore.CharacterData{
		Name:        "Character " + id,
		Personality: "curious",
	}, "")
	require.NoError(t, err)

	return card
}

func TestFileStore_RequiresLocation(t *testing.T) {
	_, err := NewStore()
	assert.Error(t, err)
}

func TestFileStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, t.TempDir())

	card := testCard(t, "id-1")
	require.NoError(t, store.Create(ctx, card))

	got, err := store.Get(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, card, got)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, cardstore.ErrNotFound)
}

func TestFileStore_RejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, t.TempDir())

	require.NoError(t, store.Create(ctx, testCard(t, "id-1")))

	err := store.Create(ctx, testCard(t, "id-1"))
	assert.ErrorIs(t, err, cardstore.ErrDuplicateID)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store := newTestStore(t, dir)
	require.NoError(t, store.Create(ctx, testCard(t, "id-1")))
	require.NoError(t, store.Create(ctx, testCard(t, "id-2")))

	reopened := newTestStore(t, dir)

	cards, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "id-1", cards[0].Id)
	assert.Equal(t, "id-2", cards[1].Id)

	err = reopened.Create(ctx, testCard(t, "id-1"))
	assert.ErrorIs(t, err, cardstore.ErrDuplicateID)
}
