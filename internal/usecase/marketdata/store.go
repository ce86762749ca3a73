package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	marketdatav1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/marketdata/v1"
	"github.com/abhatnagar21/HFT-Simulator/pkg/errors"
	"github.com/abhatnagar21/HFT-Simulator/pkg/logger"
	"github.com/abhatnagar21/HFT-Simulator/pkg/redis"
)

// Store publishes book snapshots to Redis for external observers. These are
// read-side views only; the book itself is never restored from them.
type Store struct {
	symbol      string
	ttl         time.Duration
	logger      *logger.Logger
	redisclient redis.Client
}

// NewStore creates a snapshot store for one symbol.
func NewStore(redisclient redis.Client, symbol string, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{
		symbol:      symbol,
		ttl:         ttl,
		logger:      log,
		redisclient: redisclient,
	}
}

// Publish serializes the snapshot and writes it under the symbol's book key.
func (s *Store) Publish(ctx context.Context, snapshot *marketdatav1.BookSnapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "symbol",
			Value: s.symbol,
		})
		return errors.NewTracer("snapshot_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.key(), buf, s.ttl); err != nil {
		s.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "symbol",
			Value: s.symbol,
		}, logger.Field{
			Key:   "action",
			Value: "publish snapshot",
		})
		return errors.TracerFromError(err)
	}

	s.logger.DebugContext(ctx, "Book snapshot published", logger.Field{
		Key:   "symbol",
		Value: s.symbol,
	}, logger.Field{
		Key:   "tradeCount",
		Value: snapshot.TradeCount,
	})
	return nil
}

func (s *Store) key() string {
	return fmt.Sprintf("marketdata:%s:book", s.symbol)
}
