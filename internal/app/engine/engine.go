package engine

import (
	"context"
	"sync"
	"time"

	marketdatav1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/marketdata/v1"
	orderbookv1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/orderbook/v1"
	tradepublisherv1 "github.com/abhatnagar21/HFT-Simulator/internal/domain/trade-publisher/v1"
	"github.com/abhatnagar21/HFT-Simulator/internal/usecase/marketmaker"
	"github.com/abhatnagar21/HFT-Simulator/internal/usecase/orderbook"
	"github.com/abhatnagar21/HFT-Simulator/internal/usecase/portfolio"
	"github.com/abhatnagar21/HFT-Simulator/internal/usecase/pricepath"
	"github.com/abhatnagar21/HFT-Simulator/pkg/errors"
	"github.com/abhatnagar21/HFT-Simulator/pkg/logger"
	"github.com/shopspring/decimal"
)

// Engine drives the simulated market: it advances the price path, refreshes
// the market maker's quotes, submits random flow, and routes every emitted
// trade to the portfolio accountant and the trade feed. All book mutations
// happen from the single step loop, so the book's sequencing point is never
// contended.
type Engine struct {
	book       *orderbook.Book
	quoter     *marketmaker.Quoter
	accountant *portfolio.Accountant
	walk       *pricepath.Walk
	flow       *pricepath.Flow
	publisher  tradepublisherv1.Publisher // optional
	marketdata marketdatav1.Store         // optional
	logger     *logger.Logger

	symbol  string
	tickExp int32

	// live market-maker quote ids, cancelled before each re-quote
	bidQuoteID uint64
	askQuoteID uint64
	haveQuotes bool

	mu          sync.RWMutex
	steps       int
	totalTrades int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	options *Options
}

// NewEngine creates a new Engine with the provided dependencies. publisher
// and marketdata may be nil; the corresponding exports are skipped.
func NewEngine(
	book *orderbook.Book,
	quoter *marketmaker.Quoter,
	accountant *portfolio.Accountant,
	walk *pricepath.Walk,
	flow *pricepath.Flow,
	publisher tradepublisherv1.Publisher,
	marketdata marketdatav1.Store,
	log *logger.Logger,
	symbol string,
	tickExp int32,
	options *Options,
) *Engine {
	if options == nil {
		options = DefaultEngineOptions()
	}

	return &Engine{
		book:       book,
		quoter:     quoter,
		accountant: accountant,
		walk:       walk,
		flow:       flow,
		publisher:  publisher,
		marketdata: marketdata,
		logger:     log,
		symbol:     symbol,
		tickExp:    tickExp,
		options:    options,
	}
}

// Start launches the simulation and snapshot goroutines.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	e.ctx, e.cancel = context.WithCancel(ctx)
	e.mu.Unlock()

	e.wg.Add(1)
	go e.runSimulation()

	if e.marketdata != nil {
		e.wg.Add(1)
		go e.runDepthPublisher()
	}

	e.logger.Info("Simulation engine started", logger.Field{
		Key:   "symbol",
		Value: e.symbol,
	})
	return nil
}

// Stop gracefully shuts down the engine.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.RLock()
	cancel := e.cancel
	e.mu.RUnlock()
	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logSummary()
		e.logger.Info("Simulation engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// Done returns a channel closed when the engine finishes on its own,
// either by exhausting its step budget or by hitting a fatal error.
// Before Start it returns a nil channel, which never fires.
func (e *Engine) Done() <-chan struct{} {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ctx == nil {
		return nil
	}
	return e.ctx.Done()
}

// Steps returns the number of completed simulation steps.
func (e *Engine) Steps() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.steps
}

// TotalTrades returns the number of trades routed so far.
func (e *Engine) TotalTrades() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalTrades
}

// runSimulation is the single-writer step loop.
func (e *Engine) runSimulation() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.options.StepInterval)
	defer ticker.Stop()

	e.logger.Info("Starting simulation loop", logger.Field{
		Key:   "stepInterval",
		Value: e.options.StepInterval.String(),
	})

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Simulation loop shutting down")
			return
		case <-ticker.C:
			if err := e.step(e.ctx); err != nil {
				// a crossed book is a matching defect; nothing to retry
				e.logger.Error(err, logger.Field{
					Key:   "action",
					Value: "simulation_step",
				})
				e.cancel()
				return
			}

			e.mu.Lock()
			e.steps++
			done := e.options.Steps > 0 && e.steps >= e.options.Steps
			e.mu.Unlock()

			if done {
				e.logger.Info("Simulation step budget reached")
				e.cancel()
				return
			}
		}
	}
}

// runDepthPublisher periodically exports a consistent book snapshot.
func (e *Engine) runDepthPublisher() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.options.DepthInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Depth publisher shutting down")
			return
		case <-ticker.C:
			if err := e.marketdata.Publish(e.ctx, e.snapshot()); err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "publish_depth",
				})
			}
		}
	}
}

// step advances the market by one tick of simulated time.
func (e *Engine) step(ctx context.Context) error {
	referencePrice := e.walk.Next()

	if err := e.refreshQuotes(ctx, referencePrice); err != nil {
		return err
	}

	intent := e.flow.Next(referencePrice)
	switch intent.Kind {
	case orderbookv1.KindLimit:
		res, err := e.book.SubmitLimit(intent.Side, intent.Price, intent.Quantity)
		if err != nil {
			return err
		}
		e.routeTrades(ctx, res.Trades)
	case orderbookv1.KindMarket:
		res, err := e.book.SubmitMarket(intent.Side, intent.Quantity)
		if err != nil {
			return err
		}
		e.routeTrades(ctx, res.Trades)
		if res.Unfilled > 0 {
			e.logger.Debug("Market order partially filled",
				logger.Field{Key: "side", Value: string(intent.Side)},
				logger.Field{Key: "unfilled", Value: res.Unfilled},
			)
		}
	}

	return nil
}

// refreshQuotes cancels the previous market-maker pair and rests a fresh
// one around the reference price. A cancel may miss because the quote has
// already been filled; that is not an error.
func (e *Engine) refreshQuotes(ctx context.Context, referencePrice int64) error {
	if e.haveQuotes {
		for _, id := range []uint64{e.bidQuoteID, e.askQuoteID} {
			if err := e.book.Cancel(id); err != nil {
				if !errors.ErrorCodeEquals(err, string(errors.OrderNotFound)) {
					return err
				}
			}
		}
	}

	quote := e.quoter.Quote(referencePrice)

	bidRes, err := e.book.SubmitLimit(orderbookv1.SideBuy, quote.BidPrice, quote.Size)
	if err != nil {
		return err
	}
	e.accountant.Track(bidRes.OrderID)
	e.routeTrades(ctx, bidRes.Trades)

	askRes, err := e.book.SubmitLimit(orderbookv1.SideSell, quote.AskPrice, quote.Size)
	if err != nil {
		return err
	}
	e.accountant.Track(askRes.OrderID)
	e.routeTrades(ctx, askRes.Trades)

	e.bidQuoteID = bidRes.OrderID
	e.askQuoteID = askRes.OrderID
	e.haveQuotes = true
	return nil
}

// routeTrades delivers executed trades to the accountant and the feed.
func (e *Engine) routeTrades(ctx context.Context, trades []orderbookv1.Trade) {
	if len(trades) == 0 {
		return
	}

	e.mu.Lock()
	e.totalTrades += int64(len(trades))
	e.mu.Unlock()

	for _, t := range trades {
		e.accountant.OnTrade(t)

		e.logger.Debug("Trade executed",
			logger.Field{Key: "sequence", Value: t.Sequence},
			logger.Field{Key: "price", Value: t.Price},
			logger.Field{Key: "quantity", Value: t.Quantity},
			logger.Field{Key: "buyOrderID", Value: t.BuyOrderID},
			logger.Field{Key: "sellOrderID", Value: t.SellOrderID},
		)

		if e.publisher == nil {
			continue
		}
		event := &tradepublisherv1.TradeEvent{
			Symbol:      e.symbol,
			Sequence:    t.Sequence,
			Price:       decimal.New(t.Price, -e.tickExp).String(),
			Quantity:    t.Quantity,
			BuyOrderID:  t.BuyOrderID,
			SellOrderID: t.SellOrderID,
			ExecutedAt:  t.Timestamp,
		}
		if err := e.publisher.PublishTrade(ctx, event); err != nil {
			e.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "publish_trade",
			})
		}
	}
}

// snapshot builds a consistent point-in-time view of the book.
func (e *Engine) snapshot() *marketdatav1.BookSnapshot {
	snap := &marketdatav1.BookSnapshot{
		Symbol:     e.symbol,
		TradeCount: e.book.TradeCount(),
		Timestamp:  time.Now().UnixNano(),
	}

	if price, ok := e.book.BestBid(); ok {
		snap.BestBid = &price
	}
	if price, ok := e.book.BestAsk(); ok {
		snap.BestAsk = &price
	}

	for _, lvl := range e.book.Depth(orderbookv1.SideBuy, e.options.DepthLevels) {
		snap.Bids = append(snap.Bids, marketdatav1.LevelEntry{
			Price:    lvl.Price,
			Quantity: lvl.Quantity,
			Orders:   lvl.Orders,
		})
	}
	for _, lvl := range e.book.Depth(orderbookv1.SideSell, e.options.DepthLevels) {
		snap.Asks = append(snap.Asks, marketdatav1.LevelEntry{
			Price:    lvl.Price,
			Quantity: lvl.Quantity,
			Orders:   lvl.Orders,
		})
	}

	return snap
}

// logSummary emits the final portfolio status.
func (e *Engine) logSummary() {
	price := e.walk.Price()
	e.logger.Info("Portfolio summary",
		logger.Field{Key: "symbol", Value: e.symbol},
		logger.Field{Key: "steps", Value: e.Steps()},
		logger.Field{Key: "trades", Value: e.TotalTrades()},
		logger.Field{Key: "cash", Value: e.accountant.Cash().String()},
		logger.Field{Key: "position", Value: e.accountant.Position()},
		logger.Field{Key: "value", Value: e.accountant.Value(price).String()},
		logger.Field{Key: "pnlPercent", Value: e.accountant.PnLPercent(price).StringFixed(2)},
	)
}
