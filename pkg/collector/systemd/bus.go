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
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/NVIDIA/node-inventory/pkg/errors"
)

const (
	managerDest      = "org.freedesktop.systemd1"
	unitRoot         = dbus.ObjectPath("/org/freedesktop/systemd1/unit")
	unitInterface    = "org.freedesktop.systemd1.Unit"
	introspectMethod = "org.freedesktop.DBus.Introspectable.Introspect"
	propertyGet      = "org.freedesktop.DBus.Properties.Get"
)

// BusKind selects the message bus the client talks to.
type BusKind string

const (
	BusSystem  BusKind = "system"
	BusSession BusKind = "session"
)

// ParseBusKind parses "system" or "session" case-insensitively. An empty
// string yields BusSystem.
func ParseBusKind(s string) (BusKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(BusSystem):
		return BusSystem, nil
	case string(BusSession):
		return BusSession, nil
	default:
		return "", errors.NewWithContext(errors.ErrCodeInvalidRequest, "unsupported bus",
			map[string]any{"bus": s, "supported": []BusKind{BusSystem, BusSession}})
	}
}

// Bus is the subset of a D-Bus connection the client uses. Calls address the
// systemd manager.
type Bus interface {
	// Introspect returns the introspection XML of the object at path.
	Introspect(ctx context.Context, path dbus.ObjectPath) (string, error)

	// Property reads one property of iface on the object at path.
	Property(ctx context.Context, path dbus.ObjectPath, iface, name string) (dbus.Variant, error)

	// Connected reports whether the underlying connection is still usable.
	Connected() bool

	Close() error
}

// Dialer opens a Bus.
type Dialer func(ctx context.Context) (Bus, error)

// DialerFor returns the godbus dialer for the given bus.
func DialerFor(kind BusKind) Dialer {
	return func(ctx context.Context) (Bus, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// the connection outlives the dialing context, so it is not bound to it
		var conn *dbus.Conn
		var err error
		switch kind {
		case BusSession:
			conn, err = dbus.ConnectSessionBus()
		default:
			conn, err = dbus.ConnectSystemBus()
		}
		if err != nil {
			return nil, err
		}
		return &dbusBus{conn: conn}, nil
	}
}

type dbusBus struct {
	conn *dbus.Conn
}

func (b *dbusBus) Introspect(ctx context.Context, path dbus.ObjectPath) (string, error) {
	var doc string
	err := b.conn.Object(managerDest, path).CallWithContext(ctx, introspectMethod, 0).Store(&doc)
	return doc, err
}

func (b *dbusBus) Property(ctx context.Context, path dbus.ObjectPath, iface, name string) (dbus.Variant, error) {
	var v dbus.Variant
	err := b.conn.Object(managerDest, path).CallWithContext(ctx, propertyGet, 0, iface, name).Store(&v)
	return v, err
}

func (b *dbusBus) Connected() bool {
	return b.conn.Connected()
}

func (b *dbusBus) Close() error {
	return b.conn.Close()
}
