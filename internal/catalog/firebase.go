package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const recordsPath = "animes"

// FirebaseStore talks to a Firebase Realtime Database over its REST API.
// Records live under /animes/{id} in the flat wire layout (see Record).
type FirebaseStore struct {
	baseURL string
	auth    string
	client  *resty.Client
}

// NewFirebaseStore creates a store for the given database URL, e.g.
// https://myproject-default-rtdb.asia-southeast1.firebasedatabase.app.
// authToken may be empty for databases with open rules.
func NewFirebaseStore(baseURL, authToken string) *FirebaseStore {
	return &FirebaseStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    strings.TrimSpace(authToken),
		client:  resty.New().SetTimeout(10 * time.Second),
	}
}

func (s *FirebaseStore) request(ctx context.Context) *resty.Request {
	req := s.client.R().SetContext(ctx)
	if s.auth != "" {
		req.SetQueryParam("auth", s.auth)
	}
	return req
}

func (s *FirebaseStore) GetAll(ctx context.Context) ([]Entry, error) {
	resp, err := s.request(ctx).Get(fmt.Sprintf("%s/%s.json", s.baseURL, recordsPath))
	if err != nil {
		return nil, fmt.Errorf("firebase: get all: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("firebase: get all: status %d", resp.StatusCode())
	}

	body := resp.Body()
	if isNull(body) {
		return []Entry{}, nil
	}

	var raw map[string]Record
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("firebase: get all: decode: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for id, rec := range raw {
		entries = append(entries, Entry{ID: id, Record: rec})
	}
	sortEntries(entries)
	return entries, nil
}

func (s *FirebaseStore) GetOne(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}

	resp, err := s.request(ctx).Get(fmt.Sprintf("%s/%s/%s.json", s.baseURL, recordsPath, id))
	if err != nil {
		return Record{}, fmt.Errorf("firebase: get %s: %w", id, err)
	}
	if resp.StatusCode() == 404 {
		return Record{}, ErrNotFound
	}
	if resp.IsError() {
		return Record{}, fmt.Errorf("firebase: get %s: status %d", id, resp.StatusCode())
	}

	body := resp.Body()
	if isNull(body) {
		return Record{}, ErrNotFound
	}

	var rec Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return Record{}, fmt.Errorf("firebase: get %s: decode: %w", id, err)
	}
	return rec, nil
}

func (s *FirebaseStore) Put(ctx context.Context, id string, rec Record) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	if len(rec.Episodes) == 0 {
		return ErrNoEpisodes
	}

	resp, err := s.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(rec).
		Put(fmt.Sprintf("%s/%s/%s.json", s.baseURL, recordsPath, id))
	if err != nil {
		return fmt.Errorf("firebase: put %s: %w", id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("firebase: put %s: status %d", id, resp.StatusCode())
	}
	return nil
}

// The RTDB REST API returns the literal "null" for absent nodes.
func isNull(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null"))
}
