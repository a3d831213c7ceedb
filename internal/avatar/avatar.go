// Package avatar fetches player head images for the backpack portrait slot.
// Every failure degrades to "no avatar"; rendering never waits on a retry.
package avatar

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"io"
	"net/http"
	"time"
)

const (
	helmURL   = "https://minotar.net/helm/%s/128.png"
	userAgent = "BV/1.0"
)

// Fetcher performs bounded remote lookups of player head images.
type Fetcher struct {
	client *http.Client
}

// NewFetcher builds a fetcher with a per-request timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch returns the decoded head image for a player name, or nil when the
// name is empty/unknown or anything goes wrong.
func (f *Fetcher) Fetch(name string) *image.NRGBA {
	if name == "" || name == "Unknown" {
		return nil
	}

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf(helmURL, name), nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil
	}
	src, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
