package cardstore

import (
	"fmt"
	"strings"
)

const (
	// SpecName and SpecVersion tag every card with the record format it
	// implements.
	SpecName    = "chara_card_v2"
	SpecVersion = "2.0"

	// DefaultAvatarKey is the sentinel meaning "use the default portrait"
	// rather than a blob store key.
	DefaultAvatarKey = "none"
)

type CharacterCard struct {
	Id             string        `json:"id"`
	Spec           string        `json:"spec"`
	SpecVersion    string        `json:"spec_version"`
	Data           CharacterData `json:"data"`
	CreatorComment string        `json:"creatorcomment"`
	AvatarKey      string        `json:"avatar"`
}

type CharacterData struct {
	Name                    string         `json:"name"`
	Description             string         `json:"description"`
	Personality             string         `json:"personality"`
	Scenario                string         `json:"scenario"`
	FirstMessage            string         `json:"first_mes"`
	ExampleMessages         string         `json:"mes_example"`
	CreatorNotes            string         `json:"creator_notes"`
	SystemPrompt            string         `json:"system_prompt"`
	PostHistoryInstructions string         `json:"post_history_instructions"`
	AlternateGreetings      []string       `json:"alternate_greetings"`
	CharacterBook           *CharacterBook `json:"character_book,omitempty"`
	Tags                    []string       `json:"tags"`
	Creator                 string         `json:"creator"`
	CharacterVersion        string         `json:"character_version"`
	Extensions              map[string]any `json:"extensions"`
}

type CharacterBook struct {
	Name    string      `json:"name,omitempty"`
	Entries []BookEntry `json:"entries"`
}

type BookEntry struct {
	Keys           []string `json:"keys"`
	Content        string   `json:"content"`
	Enabled        bool     `json:"enabled"`
	InsertionOrder int      `json:"insertion_order"`
}

// NewCard is the single construction path for cards. It requires a non-empty
// name and personality, fills the remaining defaults of the card format, and
// substitutes the default-avatar sentinel for a blank avatar key.
func NewCard(id string, data CharacterData, avatarKey string) (CharacterCard, error) {
	if len(strings.TrimSpace(id)) == 0 {
		return CharacterCard{}, fmt.Errorf("%w: id is required", ErrInvalidCard)
	}

	data.Name = strings.TrimSpace(data.Name)
	if len(data.Name) == 0 {
		return CharacterCard{}, fmt.Errorf("%w: name is required", ErrInvalidCard)
	}

	if len(strings.TrimSpace(data.Personality)) == 0 {
		return CharacterCard{}, fmt.Errorf("%w: personality is required", ErrInvalidCard)
	}

	if len(strings.TrimSpace(data.FirstMessage)) == 0 {
		data.FirstMessage = fmt.Sprintf("Hello, I'm %s.", data.Name)
	}

	if data.AlternateGreetings == nil {
		data.AlternateGreetings = []string{}
	}

	if data.Tags == nil {
		data.Tags = []string{}
	}

	if data.Extensions == nil {
		data.Extensions = map[string]any{}
	}

	// A present book always carries an entries list, never null.
	if data.CharacterBook != nil && data.CharacterBook.Entries == nil {
		data.CharacterBook.Entries = []BookEntry{}
	}

	if len(strings.TrimSpace(avatarKey)) == 0 {
		avatarKey = DefaultAvatarKey
	}

	card := CharacterCard{
		Id:             id,
		Spec:           SpecName,
		SpecVersion:    SpecVersion,
		Data:           data,
		CreatorComment: data.CreatorNotes,
		AvatarKey:      avatarKey,
	}

	return card, nil
}
