package tradepublisherv1

import "context"

// Publisher defines the interface for exporting the trade feed.
type Publisher interface {
	PublishTrade(ctx context.Context, event *TradeEvent) error
	Close() error
}
