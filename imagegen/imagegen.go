package imagegen

import (
	"context"
	"fmt"
	"strings"
)

// Pixel dimensions accepted by the generation endpoint.
const (
	SizeSquare    = "1024x1024"
	SizePortrait  = "1024x1792"
	SizeLandscape = "1792x1024"
)

const (
	QualityStandard = "standard"
	QualityHD       = "hd"
)

const generationsPath = "/images/generations"

// Request carries everything a single generation call needs. ApiKey and
// BaseUrl travel with the request so generators stay stateless.
type Request struct {
	Prompt  string
	ApiKey  string
	BaseUrl string
	Model   string
	Size    string
	Quality string
	Count   int
}

// Result is the outcome of a generation call: either a hosted image URL, an
// inline base64 payload, or an error message. Exactly one success variant is
// populated on success.
type Result struct {
	Success   bool   `json:"success"`
	ImageURL  string `json:"image_url,omitempty"`
	ImageData string `json:"image_data,omitempty"`
	Error     string `json:"error,omitempty"`
}

func SuccessURL(url string) Result {
	return Result{Success: true, ImageURL: url}
}

func SuccessData(data string) Result {
	return Result{Success: true, ImageData: data}
}

func Failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Generator never returns an error: every failure, including transport
// failures, is folded into the Result.
type Generator interface {
	Generate(ctx context.Context, req Request) Result
}

// NormalizeBaseURL strips trailing slashes so endpoint construction is
// insensitive to how the base URL was entered.
func NormalizeBaseURL(baseUrl string) string {
	return strings.TrimRight(strings.TrimSpace(baseUrl), "/")
}

// Endpoint is the generation endpoint for a given base URL.
func Endpoint(baseUrl string) string {
	return NormalizeBaseURL(baseUrl) + generationsPath
}

// GenerateCharacterAvatar wraps Generate with a portrait prompt template and
// fixed presets.
func GenerateCharacterAvatar(ctx context.Context, g Generator, name string, appearance string, apiKey string, baseUrl string) Result {
	prompt := fmt.Sprintf("Character portrait of %s. %s. Detailed, high-quality character art, head and shoulders, neutral background.", name, appearance)

	return g.Generate(ctx, Request{
		Prompt:  prompt,
		ApiKey:  apiKey,
		BaseUrl: baseUrl,
		Size:    SizePortrait,
		Quality: QualityHD,
		Count:   1,
	})
}

// GenerateSceneIllustration wraps Generate with a scene prompt template and
// fixed presets.
func GenerateSceneIllustration(ctx context.Context, g Generator, description string, apiKey string, baseUrl string) Result {
	prompt := fmt.Sprintf("Wide illustration of the following scene: %s. Cinematic lighting, detailed environment art.", description)

	return g.Generate(ctx, Request{
		Prompt:  prompt,
		ApiKey:  apiKey,
		BaseUrl: baseUrl,
		Size:    SizeLandscape,
		Quality: QualityStandard,
		Count:   1,
	})
}
