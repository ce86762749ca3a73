package marketdatav1

import "context"

// Store defines the interface for publishing book snapshots to observers.
type Store interface {
	Publish(ctx context.Context, snapshot *BookSnapshot) error
}
