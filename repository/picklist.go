package repository

import "context"

// PicklistCache is a short-lived cache for reconciled picklists.
// A miss returns (nil, false, nil); cache failures must degrade to a
// recompute, never to a user-facing error.
type PicklistCache interface {
	Get(ctx context.Context, kind string) ([]string, bool, error)
	Set(ctx context.Context, kind string, values []string) error
	Invalidate(ctx context.Context, kinds ...string) error
}
