package remote

import (
	"context"
	"fmt"
	"net/http"
)

// Resource is the typed gateway to one REST collection plus its /:id
// sub-resource. ID is the server-assigned identifier type (string for
// equipment, int elsewhere); E is the entity type, whose date fields
// decode into domain date types at this boundary.
type Resource[ID comparable, E any] struct {
	client *Client
	path   string
}

// NewResource creates a resource rooted at path, e.g. "/equipment".
func NewResource[ID comparable, E any](client *Client, path string) *Resource[ID, E] {
	return &Resource[ID, E]{client: client, path: path}
}

// List fetches the whole collection.
func (r *Resource[ID, E]) List(ctx context.Context) ([]E, error) {
	var out []E
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create posts a new entity and returns the server's canonical version.
func (r *Resource[ID, E]) Create(ctx context.Context, in E) (E, error) {
	var out E
	if err := r.client.do(ctx, http.MethodPost, r.path, in, &out); err != nil {
		var zero E
		return zero, err
	}
	return out, nil
}

// Update replaces the entity with the given id and returns the server's
// canonical version. Concurrent updates are last-write-wins at the
// server; no conflict detection happens client-side.
func (r *Resource[ID, E]) Update(ctx context.Context, id ID, in E) (E, error) {
	var out E
	if err := r.client.do(ctx, http.MethodPut, fmt.Sprintf("%s/%v", r.path, id), in, &out); err != nil {
		var zero E
		return zero, err
	}
	return out, nil
}

// Delete removes the entity with the given id.
func (r *Resource[ID, E]) Delete(ctx context.Context, id ID) error {
	return r.client.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%v", r.path, id), nil, nil)
}
