package jikan

import (
	"context"
	"errors"
)

// ErrNotFound is the only lookup failure callers see; the client never
// surfaces transport or decode errors from Lookup.
var ErrNotFound = errors.New("jikan: anime not found")

// Provider is the port for fetching anime metadata from the Jikan/MAL API.
type Provider interface {
	Lookup(ctx context.Context, title string) (MetadataSummary, error)
	GetFull(ctx context.Context, id string) (*Detail, error)
}
