package client

import (
	"context"
	"time"
)

const DefaultPollInterval = 15 * time.Second

// UnreadPoller fetches the unread notification count right away and then on
// every tick, as long as the session belongs to an admin.
type UnreadPoller struct {
	api      *Client
	session  *Session
	interval time.Duration

	// OnCount receives every successful result, even if unchanged.
	OnCount func(unread int64)
	// OnError receives failed fetches; polling continues unless the failure
	// logged the session out.
	OnError func(err error)
}

func NewUnreadPoller(api *Client, session *Session, interval time.Duration) *UnreadPoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &UnreadPoller{
		api:      api,
		session:  session,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled or the session stops being an admin one.
func (p *UnreadPoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if !p.session.IsAdmin() {
			return nil
		}
		p.poll(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *UnreadPoller) poll(ctx context.Context) {
	unread, err := p.api.UnreadCount(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if p.OnError != nil {
			p.OnError(err)
		}
		return
	}
	if p.OnCount != nil {
		p.OnCount(unread)
	}
}
