package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultMimeType = "image/png"

var client = &http.Client{Timeout: 30 * time.Second}

// Asset is a binary payload ready for the blob store.
type Asset struct {
	Filename string
	Data     []byte
	MimeType string
}

// FromURL fetches a hosted image and wraps it as an asset. Transport failures
// and non-success statuses are returned to the caller; there is no fallback.
func FromURL(ctx context.Context, rawURL string, filename string) (Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Asset{}, err
	}

	rsp, err := client.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer rsp.Body.Close()

	if rsp.StatusCode >= 400 {
		return Asset{}, fmt.Errorf("failed to fetch image: status: %s", rsp.Status)
	}

	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return Asset{}, fmt.Errorf("failed to read image body: %w", err)
	}

	mimeType := rsp.Header.Get("Content-Type")
	if len(mimeType) == 0 {
		mimeType = defaultMimeType
	}

	return Asset{
		Filename: filename,
		Data:     data,
		MimeType: mimeType,
	}, nil
}

// FromInline decodes a base64 payload, stripping an optional
// "data:image/...;base64," header first. The payload comes from the
// generation client and is trusted to be well-formed.
func FromInline(payload string, filename string) Asset {
	if strings.HasPrefix(payload, "data:") {
		if _, rest, found := strings.Cut(payload, ","); found {
			payload = rest
		}
	}

	data, _ := base64.StdEncoding.DecodeString(payload)

	return Asset{
		Filename: filename,
		Data:     data,
		MimeType: defaultMimeType,
	}
}
