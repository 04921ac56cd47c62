// Package inbox is the single consumer every payment redirect channel feeds.
//
// HTTP handlers publish a redirect.Event and wait for the reply; one router
// handler turns events into outcomes. A caller that stops waiting does not
// cancel the event it published.
package inbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"seatly/internal/domain/redirect"
	"seatly/internal/infra/metrics"
	"seatly/internal/pkg/config"
	"seatly/internal/pkg/errs"
	"seatly/internal/usecase/commands"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	Topic       = "payment.redirects"
	handlerName = "redirect_inbox"

	handleTimeout = 30 * time.Second
)

var ErrInboxClosed = errs.New("redirect inbox is closed")

type reply struct {
	result *commands.FinalizeResult
	err    error
}

type Inbox struct {
	pubsub   *gochannel.GoChannel
	router   *message.Router
	handler  commands.RedirectCommands
	metrics  *metrics.Collector
	logger   *slog.Logger
	closed   chan struct{}
	closeMux sync.Once

	mu      sync.Mutex
	waiting map[string]chan reply
}

func New(cfg config.RedirectConfig, handler commands.RedirectCommands, m *metrics.Collector, logger *slog.Logger) (*Inbox, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	pubsub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: cfg.InboxBuffer,
	}, wmLogger)

	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: 10 * time.Second,
	}, wmLogger)
	if err != nil {
		return nil, errs.Wrap(err, "create inbox router")
	}

	i := &Inbox{
		pubsub:  pubsub,
		router:  router,
		handler: handler,
		metrics: m,
		logger:  logger,
		closed:  make(chan struct{}),
		waiting: make(map[string]chan reply),
	}
	router.AddNoPublisherHandler(handlerName, Topic, pubsub, i.consume)
	return i, nil
}

// Run blocks until ctx is done or Close is called.
func (i *Inbox) Run(ctx context.Context) error {
	return i.router.Run(ctx)
}

func (i *Inbox) Running() <-chan struct{} {
	return i.router.Running()
}

func (i *Inbox) Close() error {
	var err error
	i.closeMux.Do(func() {
		close(i.closed)
		if rerr := i.router.Close(); rerr != nil {
			err = rerr
		}
		if perr := i.pubsub.Close(); perr != nil && err == nil {
			err = perr
		}
	})
	return err
}

// Submit publishes ev and waits for its outcome or for ctx to end.
func (i *Inbox) Submit(ctx context.Context, ev redirect.Event) (*commands.FinalizeResult, error) {
	select {
	case <-i.closed:
		return nil, ErrInboxClosed
	default:
	}
	select {
	case <-i.Running():
	case <-i.closed:
		return nil, ErrInboxClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, errs.Wrap(err, "encode redirect event")
	}

	id := watermill.NewUUID()
	wait := make(chan reply, 1)
	i.mu.Lock()
	i.waiting[id] = wait
	i.mu.Unlock()
	defer func() {
		i.mu.Lock()
		delete(i.waiting, id)
		i.mu.Unlock()
	}()

	if err := i.pubsub.Publish(Topic, message.NewMessage(id, payload)); err != nil {
		return nil, errs.Wrap(err, "publish redirect event")
	}

	select {
	case r := <-wait:
		return r.result, r.err
	case <-i.closed:
		return nil, ErrInboxClosed
	case <-ctx.Done():
		i.logger.WarnContext(ctx, "caller stopped waiting for redirect outcome",
			"message_uuid", id,
			"channel", string(ev.Channel))
		return nil, ctx.Err()
	}
}

// consume always acks: a retry is the caller's decision, not the inbox's.
func (i *Inbox) consume(msg *message.Message) error {
	var ev redirect.Event
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		i.logger.Error("dropping undecodable redirect event", "message_uuid", msg.UUID, "error", err.Error())
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	start := time.Now()
	result, err := i.handler.HandleRedirect(ctx, ev)

	outcome := "error"
	if err == nil && result != nil {
		outcome = string(result.Outcome)
	}
	i.metrics.ObserveRedirect(string(ev.Channel), outcome, time.Since(start))

	i.mu.Lock()
	wait, ok := i.waiting[msg.UUID]
	i.mu.Unlock()
	if ok {
		wait <- reply{result: result, err: err}
	}
	return nil
}
