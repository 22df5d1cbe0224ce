package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/w-h-a/persona"
	"github.com/w-h-a/persona/blobstore"
	blobfile "github.com/w-h-a/persona/blobstore/file"
	blobmemory "github.com/w-h-a/persona/blobstore/memory"
	"github.com/w-h-a/persona/cardstore"
	cardfile "github.com/w-h-a/persona/cardstore/file"
	cardmemory "github.com/w-h-a/persona/cardstore/memory"
	"github.com/w-h-a/persona/imagegen"
	openaigenerator "github.com/w-h-a/persona/imagegen/openai"
	"github.com/w-h-a/persona/media"
	httpserver "github.com/w-h-a/persona/server/http"
)

var (
	cfg struct {
		// Store config
		DataDir string `help:"Directory for cards and avatars; empty keeps everything in memory" default:""`

		// Server config
		Serve bool   `help:"Serve the HTTP API instead of creating a character" default:"false"`
		Addr  string `help:"Address for the HTTP API" default:":8080"`

		// Character config
		Name         string   `help:"Character name"`
		Description  string   `help:"Character description" default:""`
		Personality  string   `help:"Character personality"`
		Scenario     string   `help:"Character scenario" default:""`
		FirstMessage string   `help:"Opening greeting; defaults to one derived from the name" default:""`
		Tags         []string `help:"Character tags"`
		Creator      string   `help:"Creator attribution" default:""`

		// Avatar config
		AvatarFile   string `help:"Path to a portrait image to attach" default:""`
		AvatarPrompt string `help:"Generate the portrait from this prompt" default:""`

		// Generator config
		ApiKey  string `help:"API key for the image generation service" default:""`
		BaseUrl string `help:"Base URL of the image generation service" default:"https://api.openai.com/v1"`
		Model   string `help:"Model identifier for image generation" default:"dall-e-3"`
		Size    string `help:"Image size" default:"1024x1024"`
		Quality string `help:"Image quality (standard or hd)" default:"standard"`
	}
)

func main() {
	// Parse inputs
	_ = kong.Parse(&cfg)
	ctx := context.Background()

	// Create stores
	var cards cardstore.CardStore
	var blobs blobstore.BlobStore

	if len(cfg.DataDir) > 0 {
		var err error

		cards, err = cardfile.NewStore(cardstore.WithLocation(filepath.Join(cfg.DataDir, "characters")))
		if err != nil {
			log.Fatalf("❌ failed to create card store: %v", err)
		}

		blobs, err = blobfile.NewStore(blobstore.WithLocation(filepath.Join(cfg.DataDir, "avatars")))
		if err != nil {
			log.Fatalf("❌ failed to create blob store: %v", err)
		}
	} else {
		cards = cardmemory.NewStore()
		blobs = blobmemory.NewStore()
	}

	// Create generator
	generator := openaigenerator.NewGenerator(
		imagegen.WithModel(cfg.Model),
	)

	// Create kit
	kit := persona.New(cards, blobs, generator)

	if cfg.Serve {
		handler := httpserver.NewHandler(kit)
		fmt.Printf("✅ Serving on %s\n", cfg.Addr)
		if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
			log.Fatalf("❌ server stopped: %v", err)
		}
		return
	}

	// Resolve the avatar source
	var avatar media.AvatarSource

	switch {
	case len(cfg.AvatarFile) > 0:
		bs, err := os.ReadFile(cfg.AvatarFile)
		if err != nil {
			log.Fatalf("❌ failed to read avatar file: %v", err)
		}
		avatar.Upload = &media.Asset{
			Filename: filepath.Base(cfg.AvatarFile),
			Data:     bs,
			MimeType: http.DetectContentType(bs),
		}
	case len(cfg.AvatarPrompt) > 0:
		result := kit.GenerateImage(ctx, imagegen.Request{
			Prompt:  cfg.AvatarPrompt,
			ApiKey:  cfg.ApiKey,
			BaseUrl: cfg.BaseUrl,
			Model:   cfg.Model,
			Size:    cfg.Size,
			Quality: cfg.Quality,
			Count:   1,
		})
		if !result.Success {
			log.Fatalf("❌ image generation failed: %s", result.Error)
		}
		avatar.GeneratedURL = result.ImageURL
		avatar.GeneratedData = result.ImageData
	}

	// Create the character
	card, err := kit.CreateCharacter(ctx, cardstore.CharacterData{
		Name:         cfg.Name,
		Description:  cfg.Description,
		Personality:  cfg.Personality,
		Scenario:     cfg.Scenario,
		FirstMessage: cfg.FirstMessage,
		Tags:         cfg.Tags,
		Creator:      cfg.Creator,
	}, avatar)
	if err != nil {
		log.Fatalf("❌ failed to create character: %v", err)
	}

	fmt.Printf("✅ Created character %s (%s)\n", card.Data.Name, card.Id)

	out, _ := json.MarshalIndent(card, "", "  ")
	fmt.Println(string(out))
}
