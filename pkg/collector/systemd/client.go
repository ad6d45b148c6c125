// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package systemd

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/node-inventory/pkg/defaults"
	"github.com/NVIDIA/node-inventory/pkg/errors"
)

// UnitRecord is one service-manager unit.
type UnitRecord struct {
	// Name is the introspected node name, e.g. "ssh_2eservice".
	Name        string `json:"name" yaml:"name"`
	CanFreeze   bool   `json:"canFreeze" yaml:"canFreeze"`
	CollectMode string `json:"collectMode" yaml:"collectMode"`
	// ID is the unit id, e.g. "ssh.service".
	ID string `json:"id" yaml:"id"`
}

// ConnState is the state of the client's bus connection.
type ConnState int

const (
	Disconnected ConnState = iota
	Connecting
	Connected
)

func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Client reads unit properties from systemd. It is safe for concurrent use.
type Client struct {
	kind        BusKind
	dial        Dialer
	concurrency int
	props       propertySource

	connMu sync.Mutex
	state  ConnState
	bus    Bus

	unitsMu sync.RWMutex
	units   []UnitRecord
}

// Option configures a Client.
type Option func(*Client)

// WithBusKind selects the system or session bus. Default is BusSystem.
func WithBusKind(kind BusKind) Option {
	return func(c *Client) {
		c.kind = kind
	}
}

// WithDialer replaces the godbus dialer.
func WithDialer(d Dialer) Option {
	return func(c *Client) {
		c.dial = d
	}
}

// WithConcurrency bounds the number of units read at once. Values below 1
// are treated as 1.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		c.concurrency = max(n, 1)
	}
}

// NewClient creates a disconnected client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		kind:        BusSystem,
		concurrency: defaults.UnitReadConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dial == nil {
		c.dial = DialerFor(c.kind)
	}
	if c.props == nil {
		c.props = goSystemdSource(c.kind)
	}
	return c
}

// State returns the current connection state.
func (c *Client) State() ConnState {
	c.connMu.Lock()
	defer c.connMu.Unlock()
	return c.state
}

// connect returns the shared bus, dialing it on first use. The lock is held
// across the dial so racing callers agree on one connection.
func (c *Client) connect(ctx context.Context) (Bus, error) {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.state == Connected {
		if c.bus.Connected() {
			return c.bus, nil
		}
		slog.Info("bus connection lost, reconnecting", slog.String("bus", string(c.kind)))
		_ = c.bus.Close()
		c.bus = nil
	}

	c.state = Connecting
	bus, err := c.dial(ctx)
	if err != nil {
		c.state = Disconnected
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "failed to connect to bus", err,
			map[string]any{"bus": string(c.kind)})
	}

	c.bus = bus
	c.state = Connected
	slog.Debug("connected to bus", slog.String("bus", string(c.kind)))

	return bus, nil
}

// Close releases the bus connection. The client dials again on next use.
func (c *Client) Close() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	c.state = Disconnected
	if c.bus == nil {
		return nil
	}
	err := c.bus.Close()
	c.bus = nil
	return err
}

// Units returns a copy of the list stored by the last successful refresh.
func (c *Client) Units() []UnitRecord {
	c.unitsMu.RLock()
	defer c.unitsMu.RUnlock()
	return slices.Clone(c.units)
}

// Refresh re-reads every unit and replaces the stored list. On error the
// stored list is unchanged. Concurrent refreshes are independent; the last
// to complete wins.
func (c *Client) Refresh(ctx context.Context) ([]UnitRecord, error) {
	start := time.Now()

	units, err := c.refresh(ctx)
	refreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		refreshTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	refreshTotal.WithLabelValues("success").Inc()
	unitCount.Set(float64(len(units)))

	c.unitsMu.Lock()
	c.units = units
	c.unitsMu.Unlock()

	slog.Debug("refreshed units", slog.Int("count", len(units)), slog.Duration("took", time.Since(start)))

	return slices.Clone(units), nil
}

func (c *Client) refresh(ctx context.Context) ([]UnitRecord, error) {
	bus, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := bus.Introspect(ctx, unitRoot)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeTransport, "failed to introspect units", err,
			map[string]any{"path": string(unitRoot)})
	}

	names, err := ParseUnitNames(doc)
	if err != nil {
		return nil, err
	}

	units := make([]UnitRecord, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, name := range names {
		g.Go(func() error {
			rec, err := readUnit(gctx, bus, name)
			if err != nil {
				return err
			}
			units[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return units, nil
}

func readUnit(ctx context.Context, bus Bus, name string) (UnitRecord, error) {
	path := dbus.ObjectPath(string(unitRoot) + "/" + name)
	if !path.IsValid() {
		return UnitRecord{}, errors.NewWithContext(errors.ErrCodeTransport, "invalid unit object path",
			map[string]any{"unit": name})
	}

	rec := UnitRecord{Name: name}
	var err error
	if rec.CanFreeze, err = readProperty[bool](ctx, bus, path, "CanFreeze"); err != nil {
		return UnitRecord{}, err
	}
	if rec.CollectMode, err = readProperty[string](ctx, bus, path, "CollectMode"); err != nil {
		return UnitRecord{}, err
	}
	if rec.ID, err = readProperty[string](ctx, bus, path, "Id"); err != nil {
		return UnitRecord{}, err
	}
	return rec, nil
}

func readProperty[T any](ctx context.Context, bus Bus, path dbus.ObjectPath, name string) (T, error) {
	var zero T

	v, err := bus.Property(ctx, path, unitInterface, name)
	if err != nil {
		return zero, errors.WrapWithContext(errors.ErrCodeTransport, "failed to read unit property", err,
			map[string]any{"path": string(path), "property": name})
	}

	val, ok := v.Value().(T)
	if !ok {
		return zero, errors.NewWithContext(errors.ErrCodeTransport, "unexpected unit property type",
			map[string]any{"path": string(path), "property": name, "signature": v.Signature().String()})
	}
	return val, nil
}
