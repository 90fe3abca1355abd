package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.jikan.moe/v4"
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: &http.Client{Timeout: 10 * time.Second}}
}

// AnimeData is the shared data block returned by single and list endpoints.
type AnimeData struct {
	MalID    int32   `json:"mal_id"`
	Title    string  `json:"title"`
	Synopsis string  `json:"synopsis"`
	Duration string  `json:"duration"`
	Episodes int32   `json:"episodes"`
	Score    float32 `json:"score"`
	Year     int32   `json:"year"`
	Genres   []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Images struct {
		JPG struct {
			ImageURL string `json:"image_url"`
		} `json:"jpg"`
	} `json:"images"`
}

type animeResponse struct {
	Data AnimeData `json:"data"`
}

type animeListResponse struct {
	Data []AnimeData `json:"data"`
}

// Lookup queries the search endpoint constrained to one top result and
// returns a normalized summary. It fails soft: transport errors, empty
// result sets and malformed bodies all collapse into ErrNotFound so the
// caller only ever distinguishes found from not-found.
func (c *Client) Lookup(ctx context.Context, title string) (MetadataSummary, error) {
	rawURL := fmt.Sprintf("%s/anime?q=%s&limit=1", c.BaseURL, url.QueryEscape(title))

	var out animeListResponse
	if err := c.fetch(ctx, rawURL, &out); err != nil {
		return MetadataSummary{}, ErrNotFound
	}
	if len(out.Data) == 0 {
		return MetadataSummary{}, ErrNotFound
	}
	return toSummary(out.Data[0]), nil
}

// GetFull fetches the rich detail block for a known MAL id. Unlike Lookup,
// failures are reported to the caller, who may choose to proceed without
// the detail.
func (c *Client) GetFull(ctx context.Context, id string) (*Detail, error) {
	malID, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || malID <= 0 {
		return nil, fmt.Errorf("jikan: invalid id %q", id)
	}

	var out animeResponse
	if err := c.fetch(ctx, c.BaseURL+"/anime/"+strconv.Itoa(malID)+"/full", &out); err != nil {
		return nil, err
	}
	d := toDetail(out.Data)
	return &d, nil
}

func (c *Client) fetch(ctx context.Context, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "animestream/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("jikan: status %d body=%q", resp.StatusCode, string(b[:min(len(b), 200)]))
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("jikan: decode error: %w body=%q", err, string(b[:min(len(b), 200)]))
	}
	return nil
}
