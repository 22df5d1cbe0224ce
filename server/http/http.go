package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/w-h-a/persona"
	"github.com/w-h-a/persona/blobstore"
	"github.com/w-h-a/persona/cardstore"
	"github.com/w-h-a/persona/imagegen"
	"github.com/w-h-a/persona/media"
	"github.com/w-h-a/persona/server"
	getsafe "github.com/w-h-a/persona/util/get_safe"
)

const maxUploadSize = 20 << 20

type handler struct {
	kit *persona.Kit
}

func (h *handler) createCharacter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	data := cardstore.CharacterData{
		Name:                    r.FormValue("name"),
		Description:             r.FormValue("description"),
		Personality:             r.FormValue("personality"),
		Scenario:                r.FormValue("scenario"),
		FirstMessage:            r.FormValue("first_mes"),
		ExampleMessages:         r.FormValue("mes_example"),
		CreatorNotes:            r.FormValue("creator_notes"),
		SystemPrompt:            r.FormValue("system_prompt"),
		PostHistoryInstructions: r.FormValue("post_history_instructions"),
		AlternateGreetings:      r.Form["alternate_greetings"],
		Tags:                    r.Form["tags"],
		Creator:                 r.FormValue("creator"),
		CharacterVersion:        r.FormValue("character_version"),
	}

	if raw := r.FormValue("extensions"); len(raw) > 0 {
		var ext map[string]any
		if err := json.Unmarshal([]byte(raw), &ext); err != nil {
			writeError(w, http.StatusBadRequest, "invalid extensions payload")
			return
		}
		data.Extensions = ext
	}

	if raw := r.FormValue("character_book"); len(raw) > 0 {
		var book cardstore.CharacterBook
		if err := json.Unmarshal([]byte(raw), &book); err != nil {
			writeError(w, http.StatusBadRequest, "invalid character book payload")
			return
		}
		data.CharacterBook = &book
	}

	var avatar media.AvatarSource

	file, header, err := r.FormFile("avatar")
	switch {
	case err == nil:
		defer file.Close()

		bs, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read avatar file")
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if len(mimeType) == 0 {
			mimeType = http.DetectContentType(bs)
		}

		avatar.Upload = &media.Asset{
			Filename: header.Filename,
			Data:     bs,
			MimeType: mimeType,
		}
	case errors.Is(err, http.ErrMissingFile):
		avatar.GeneratedURL = r.FormValue("avatar_url")
		avatar.GeneratedData = r.FormValue("avatar_data")
	default:
		writeError(w, http.StatusBadRequest, "failed to read avatar file")
		return
	}

	card, err := h.kit.CreateCharacter(r.Context(), data, avatar)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, card)
}

func (h *handler) listCharacters(w http.ResponseWriter, r *http.Request) {
	cards, err := h.kit.ListCharacters(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cards)
}

func (h *handler) getCharacter(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	card, err := h.kit.GetCharacter(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

func (h *handler) getAvatar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	blob, err := h.kit.GetAvatar(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", blob.MimeType)
	w.WriteHeader(http.StatusOK)
	w.Write(blob.Data)
}

// generateImage always answers 200 with the result union; generation failures
// travel inside the body, not as transport errors.
func (h *handler) generateImage(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req := imagegen.Request{
		Prompt:  getsafe.String(payload, "prompt"),
		ApiKey:  getsafe.String(payload, "api_key"),
		BaseUrl: getsafe.String(payload, "base_url"),
		Model:   getsafe.String(payload, "model"),
		Size:    getsafe.String(payload, "size"),
		Quality: getsafe.String(payload, "quality"),
		Count:   getsafe.Int(payload, "n"),
	}

	result := h.kit.GenerateImage(r.Context(), req)

	writeJSON(w, http.StatusOK, result)
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, cardstore.ErrInvalidCard):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, cardstore.ErrDuplicateID):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, cardstore.ErrNotFound), errors.Is(err, blobstore.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func NewHandler(kit *persona.Kit, opts ...server.Option) http.Handler {
	options := server.NewOptions(opts...)

	h := &handler{
		kit: kit,
	}

	r := mux.NewRouter()

	r.HandleFunc("/api/v1/characters", h.createCharacter).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/characters", h.listCharacters).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/characters/{id}", h.getCharacter).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/characters/{id}/avatar", h.getAvatar).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/images", h.generateImage).Methods(http.MethodPost)

	var handler http.Handler = r

	if ms, ok := MiddlewareFrom(options.Context); ok {
		for i := len(ms) - 1; i >= 0; i-- {
			handler = ms[i](handler)
		}
	}

	return handler
}
