// Package inhibit keeps the desktop screen saver off while a slideshow runs.
package inhibit

import (
	"context"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverDest  = "org.freedesktop.ScreenSaver"
	screenSaverPath  = dbus.ObjectPath("/org/freedesktop/ScreenSaver")
	screenSaverIface = "org.freedesktop.ScreenSaver"
)

// DBusClient is the slice of the org.freedesktop.ScreenSaver session bus
// interface the inhibitor needs.
//
//go:generate mockgen -destination=mocks/dbus_client_mock.go -package=mocks github.com/genricoloni/photoshow/internal/inhibit DBusClient
type DBusClient interface {
	// Inhibit asks the screen saver to stay off and returns the cookie
	// identifying the request
	Inhibit(ctx context.Context, appName, reason string) (uint32, error)

	// UnInhibit withdraws the request identified by cookie
	UnInhibit(ctx context.Context, cookie uint32) error

	// Close closes the D-Bus connection
	Close() error
}

// StdDBusClient talks to the screen saver over the session bus
type StdDBusClient struct {
	conn *dbus.Conn
}

// NewStdDBusClient connects to the session bus
func NewStdDBusClient() (*StdDBusClient, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return &StdDBusClient{conn: conn}, nil
}

// Inhibit calls org.freedesktop.ScreenSaver.Inhibit
func (c *StdDBusClient) Inhibit(ctx context.Context, appName, reason string) (uint32, error) {
	var cookie uint32
	err := c.screenSaver().CallWithContext(ctx, screenSaverIface+".Inhibit", 0, appName, reason).Store(&cookie)
	return cookie, err
}

// UnInhibit calls org.freedesktop.ScreenSaver.UnInhibit
func (c *StdDBusClient) UnInhibit(ctx context.Context, cookie uint32) error {
	return c.screenSaver().CallWithContext(ctx, screenSaverIface+".UnInhibit", 0, cookie).Err
}

// Close closes the D-Bus connection
func (c *StdDBusClient) Close() error {
	return c.conn.Close()
}

func (c *StdDBusClient) screenSaver() dbus.BusObject {
	return c.conn.Object(screenSaverDest, screenSaverPath)
}
