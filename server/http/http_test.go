package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/w-h-a/persona"
	blobmemory "github.com/w-h-a/persona/blobstore/memory"
	"github.com/w-h-a/persona/cardstore"
	cardmemory "github.com/w-h-a/persona/cardstore/memory"
	"github.com/w-h-a/persona/imagegen"
)

type fakeGenerator struct {
	req    imagegen.Request
	result imagegen.Result
}

func (g *fakeGenerator) Generate(ctx context.Context, req imagegen.Request) imagegen.Result {
	g.req = req
	return g.result
}

func newTestHandler(t *testing.T) (http.Handler, *fakeGenerator) {
	t.Helper()

	g := &fakeGenerator{result: imagegen.SuccessData("aGVsbG8=")}
	kit := persona.New(cardmemory.NewStore(), blobmemory.NewStore(), g)

	return NewHandler(kit), g
}

func multipartBody(t *testing.T, fields map[string]string, avatar []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, val := range fields {
		require.NoError(t, writer.WriteField(key, val))
	}

	if avatar != nil {
		part, err := writer.CreateFormFile("avatar", "portrait.png")
		require.NoError(t, err)
		_, err = part.Write(avatar)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func createCharacter(t *testing.T, handler http.Handler, fields map[string]string, avatar []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartBody(t, fields, avatar)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/characters", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	return w
}

func TestCreateCharacter_WithUploadedAvatar(t *testing.T) {
	handler, _ := newTestHandler(t)

	avatarBytes := []byte("portrait bytes")

	w := createCharacter(t, handler, map[string]string{
		"name":        "Mira",
		"personality": "stoic",
		"description": "a quiet cartographer",
	}, avatarBytes)
	require.Equal(t, http.StatusCreated, w.Code)

	var card cardstore.CharacterCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, "Mira", card.Data.Name)
	assert.Equal(t, card.Id+".png", card.AvatarKey)

	// The stored avatar is served back byte for byte.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/characters/"+card.Id+"/avatar", nil)
	got := httptest.NewRecorder()
	handler.ServeHTTP(got, req)

	require.Equal(t, http.StatusOK, got.Code)
	bs, _ := io.ReadAll(got.Body)
	assert.Equal(t, avatarBytes, bs)
}

func TestCreateCharacter_ValidationError(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := createCharacter(t, handler, map[string]string{"name": "Mira"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "personality is required")
}

func TestCreateCharacter_NoAvatarUsesSentinel(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := createCharacter(t, handler, map[string]string{
		"name":        "Mira",
		"personality": "stoic",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var card cardstore.CharacterCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, cardstore.DefaultAvatarKey, card.AvatarKey)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/characters/"+card.Id+"/avatar", nil)
	got := httptest.NewRecorder()
	handler.ServeHTTP(got, req)
	assert.Equal(t, http.StatusNotFound, got.Code)
}

func TestGetAndListCharacters(t *testing.T) {
	handler, _ := newTestHandler(t)

	for _, name := range []string{"Mira", "Juno"} {
		w := createCharacter(t, handler, map[string]string{
			"name":        name,
			"personality": "curious",
		}, nil)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/characters", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var cards []cardstore.CharacterCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cards))
	require.Len(t, cards, 2)
	assert.Equal(t, "Mira", cards[0].Data.Name)
	assert.Equal(t, "Juno", cards[1].Data.Name)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/characters/"+cards[1].Id, nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var card cardstore.CharacterCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, "Juno", card.Data.Name)
}

func TestGetCharacter_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/characters/missing", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateImage_PassesThroughResultUnion(t *testing.T) {
	handler, g := newTestHandler(t)

	payload := `{"prompt":"a lighthouse","api_key":"k","base_url":"https://api.example.com/v1","size":"1024x1024","n":2}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result imagegen.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "aGVsbG8=", result.ImageData)

	assert.Equal(t, "a lighthouse", g.req.Prompt)
	assert.Equal(t, "k", g.req.ApiKey)
	assert.Equal(t, 2, g.req.Count)
}

func TestGenerateImage_FailureStaysInBody(t *testing.T) {
	handler, g := newTestHandler(t)
	g.result = imagegen.Failure("prompt is required")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result imagegen.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Equal(t, "prompt is required", result.Error)
}
