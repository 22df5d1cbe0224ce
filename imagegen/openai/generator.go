package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/w-h-a/persona/imagegen"
)

type openAIGenerator struct {
	options imagegen.Options
}

// Generate validates the request, issues a single POST to the images endpoint
// and folds every outcome, including panics from the HTTP layer, into the
// result union. It makes no network call when validation fails and it is
// never retried here.
func (g *openAIGenerator) Generate(ctx context.Context, req imagegen.Request) (result imagegen.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = imagegen.Failure(fmt.Sprintf("%v", r))
		}
	}()

	prompt := strings.TrimSpace(req.Prompt)
	if len(prompt) == 0 {
		return imagegen.Failure("prompt is required")
	}

	apiKey := strings.TrimSpace(req.ApiKey)
	if len(apiKey) == 0 {
		return imagegen.Failure("api key is required")
	}

	baseUrl := imagegen.NormalizeBaseURL(req.BaseUrl)
	if len(baseUrl) == 0 {
		return imagegen.Failure("base url is required")
	}

	model := req.Model
	if len(model) == 0 {
		model = g.options.Model
	}
	if len(model) == 0 {
		model = openai.CreateImageModelDallE3
	}

	size := req.Size
	if len(size) == 0 {
		size = imagegen.SizeSquare
	}

	quality := req.Quality
	if len(quality) == 0 {
		quality = imagegen.QualityStandard
	}

	count := req.Count
	if count < 1 {
		count = 1
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseUrl

	client := openai.NewClientWithConfig(cfg)

	rsp, err := client.CreateImage(ctx, openai.ImageRequest{
		Model:          model,
		Prompt:         prompt,
		N:              count,
		Size:           size,
		Quality:        quality,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			msg := strings.TrimSpace(apiErr.Message)
			if len(msg) == 0 {
				msg = fmt.Sprintf("request failed with status %d", apiErr.HTTPStatusCode)
			}
			return imagegen.Failure(msg)
		}

		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return imagegen.Failure(fmt.Sprintf("request failed with status %d", reqErr.HTTPStatusCode))
		}

		return imagegen.Failure(err.Error())
	}

	// A hosted URL wins over inline bytes when both are present.
	for _, item := range rsp.Data {
		if len(item.URL) > 0 {
			return imagegen.SuccessURL(item.URL)
		}
	}

	for _, item := range rsp.Data {
		if len(item.B64JSON) > 0 {
			return imagegen.SuccessData(item.B64JSON)
		}
	}

	return imagegen.Failure("No image data in response")
}

func NewGenerator(opts ...imagegen.Option) imagegen.Generator {
	options := imagegen.NewOptions(opts...)

	g := &openAIGenerator{
		options: options,
	}

	return g
}
