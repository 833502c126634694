package push

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Dosada05/scrabble-director/models"
	"github.com/Dosada05/scrabble-director/store"
)

const (
	minRetryDelay = time.Second
	maxRetryDelay = 30 * time.Second
)

// Supervisor keeps one listener connected for whichever tournament is loaded.
// Loading another tournament replaces the listener; dropped connections are
// redialled with a doubling delay.
type Supervisor struct {
	url        string
	header     http.Header
	dispatcher store.Dispatcher
	logger     *slog.Logger

	minDelay time.Duration
	maxDelay time.Duration
}

func NewSupervisor(url string, header http.Header, dispatcher store.Dispatcher, logger *slog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{
		url:        url,
		header:     header,
		dispatcher: dispatcher,
		logger:     logger,
		minDelay:   minRetryDelay,
		maxDelay:   maxRetryDelay,
	}
}

// Run follows snapshots until the channel closes or ctx is done.
func (s *Supervisor) Run(ctx context.Context, snapshots <-chan *models.Tournament) {
	var (
		current int
		cancel  context.CancelFunc = func() {}
		wg      sync.WaitGroup
	)
	stop := func() {
		cancel()
		wg.Wait()
	}
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-snapshots:
			if !ok {
				return
			}
			if t == nil || t.ID == current {
				continue
			}
			stop()
			current = t.ID

			var lctx context.Context
			lctx, cancel = context.WithCancel(ctx)
			wg.Add(1)
			go func(tid int) {
				defer wg.Done()
				s.follow(lctx, tid)
			}(current)
		}
	}
}

func (s *Supervisor) follow(ctx context.Context, tid int) {
	logger := s.logger.With(slog.Int("tournament_id", tid))
	adapter := NewAdapter(tid, s.dispatcher, logger)
	delay := s.minDelay

	for {
		started := time.Now()
		err := NewListener(s.url, s.header, adapter, logger).Listen(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			logger.Warn("push channel lost", slog.Any("error", err), slog.Duration("retry_in", delay))
		}
		// A connection that stayed up for a while starts the schedule over.
		if time.Since(started) > s.maxDelay {
			delay = s.minDelay
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > s.maxDelay {
			delay = s.maxDelay
		}
	}
}
