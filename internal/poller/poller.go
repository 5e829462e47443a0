// Package poller periodically logs netconnectd status through the shared
// client. It replaces the original self-rescheduling timer with an explicit
// ticker-driven worker owned by the surrounding command.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"netconnect/internal/logging"
	"netconnect/internal/netconnectd"
	"netconnect/internal/netinfo"
)

// Poller drives the periodic status reads. It owns no protocol logic; every
// poll goes through the same client any foreground caller uses.
type Poller struct {
	client     *netconnectd.Client
	logger     *slog.Logger
	interval   time.Duration
	interfaces []string

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New constructs a poller. A nil logger falls back to a no-op logger.
func New(client *netconnectd.Client, logger *slog.Logger, interval time.Duration, interfaces []string) *Poller {
	return &Poller{
		client:     client,
		logger:     logging.NewComponentLogger(logger, "poller"),
		interval:   interval,
		interfaces: interfaces,
	}
}

// Start launches the poll loop. The first poll runs immediately; subsequent
// polls follow the configured interval until ctx is canceled or Stop is
// called.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return errors.New("poller already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true

	p.wg.Add(1)
	go p.loop(runCtx)
	return nil
}

// Stop halts the poll loop and waits for the in-flight poll to finish.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *Poller) loop(ctx context.Context) {
	defer p.wg.Done()

	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	overview, err := p.client.GetOverview(ctx)
	if err != nil {
		p.logger.Warn("status poll failed; will retry", logging.Error(err))
		return
	}

	attrs := []logging.Attr{
		logging.Bool("wifi_present", overview.Status.WifiPresent()),
		logging.Int("visible_networks", len(overview.Networks)),
		logging.String("status", string(overview.Status.Raw())),
	}
	for _, iface := range netinfo.Collect(p.interfaces) {
		value := "absent"
		if iface.Present {
			value = strings.Join(iface.Addrs, ", ")
		}
		attrs = append(attrs, logging.String("ip_"+iface.Name, value))
	}
	p.logger.LogAttrs(ctx, slog.LevelInfo, "netconnectd status", attrs...)
}
