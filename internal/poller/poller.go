package poller

import (
	"context"
	"encoding/json"
	"time"

	"homework-bot/internal/apperrors"
	"homework-bot/internal/cache"
	"homework-bot/internal/config"
	"homework-bot/internal/practicum"

	"go.uber.org/zap"
)

const failurePrefix = "Сбой в работе программы: "

type Fetcher interface {
	Fetch(ctx context.Context, from int64) (json.RawMessage, error)
}

type Notifier interface {
	Notify(text string) bool
}

// Poller checks homework statuses on a fixed period and reports changes.
// It is not safe for concurrent use; Run drives it from a single goroutine.
type Poller struct {
	fetcher   Fetcher
	notifier  Notifier
	formatter practicum.Formatter
	logger    *zap.Logger

	period       time.Duration
	repeatWindow time.Duration
	failures     *cache.Cache[string, struct{}]
	now          func() time.Time

	cursor      int64
	lastMessage string
}

func New(cfg *config.Config, fetcher Fetcher, notifier Notifier, logger *zap.Logger) *Poller {
	return &Poller{
		fetcher:      fetcher,
		notifier:     notifier,
		formatter:    practicum.Formatter{IncludeReviewerComment: cfg.IncludeReviewerComment},
		logger:       logger.Named("poller"),
		period:       cfg.RetryPeriod,
		repeatWindow: cfg.ErrorRepeatWindow,
		failures:     cache.New[string, struct{}](),
		now:          time.Now,
		cursor:       time.Now().Unix(),
	}
}

// SetCursor overrides the from_date of the next request.
func (p *Poller) SetCursor(ts int64) { p.cursor = ts }

func (p *Poller) Cursor() int64 { return p.cursor }

func (p *Poller) LastMessage() string { return p.lastMessage }

// RunOnce performs a single fetch, validate, notify cycle.
// The cursor only moves once the cycle completed and any status was delivered.
func (p *Poller) RunOnce(ctx context.Context) error {
	raw, err := p.fetcher.Fetch(ctx, p.cursor)
	if err != nil {
		return err
	}

	resp, err := practicum.CheckResponse(raw)
	if err != nil {
		return err
	}

	if len(resp.Homeworks) == 0 {
		p.logger.Debug("No new statuses", zap.Int64("from_date", p.cursor))
		p.advance(resp.CurrentDate)
		return nil
	}

	hw := resp.Homeworks[0]
	message, err := p.formatter.Format(hw)
	if err != nil {
		return err
	}

	if message == p.lastMessage {
		p.logger.Debug("No new statuses",
			zap.String("homework", hw.Name),
			zap.String("status", string(hw.Status)))
		p.advance(resp.CurrentDate)
		return nil
	}

	if !p.notifier.Notify(message) {
		p.logger.Warn("Status change not delivered, will retry next cycle",
			zap.String("homework", hw.Name))
		return nil
	}

	p.logger.Info("Status change sent",
		zap.String("homework", hw.Name),
		zap.String("status", string(hw.Status)))
	p.lastMessage = message
	p.advance(resp.CurrentDate)
	return nil
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("Polling started",
		zap.Duration("period", p.period),
		zap.Int64("from_date", p.cursor))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Polling stopped")
			return nil
		case <-timer.C:
		}

		if err := p.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				p.logger.Info("Polling stopped")
				return nil
			}
			p.reportFailure(err)
		}
		p.failures.Cleanup()

		timer.Reset(p.period)
	}
}

func (p *Poller) reportFailure(err error) {
	kind := apperrors.KindOf(err)
	message := failurePrefix + err.Error()

	p.logger.Error("Polling cycle failed",
		zap.String("kind", string(kind)),
		zap.Error(err))

	if p.repeatWindow > 0 {
		if _, seen := p.failures.Get(message); seen {
			p.logger.Debug("Failure already reported", zap.String("kind", string(kind)))
			return
		}
	}

	if p.notifier.Notify(message) && p.repeatWindow > 0 {
		p.failures.Set(message, struct{}{}, p.repeatWindow)
	}
}

func (p *Poller) advance(currentDate int64) {
	if currentDate > 0 {
		p.cursor = currentDate
		return
	}
	p.cursor = p.now().Unix()
}
