package feed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsInterface = "org.freedesktop.Notifications"
	notifyMember           = "Notify"
)

// DBusSource passively observes desktop notifications on the session bus
// without claiming the notification service, so it runs alongside the real
// notification daemon.
type DBusSource struct {
	logger *slog.Logger
}

// NewDBusSource creates a DBusSource.
func NewDBusSource(logger *slog.Logger) *DBusSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &DBusSource{logger: logger}
}

// Name returns the source identifier.
func (s *DBusSource) Name() string {
	return "dbus"
}

// Run publishes "app: summary" for every Notify call until ctx is done.
func (s *DBusSource) Run(ctx context.Context, out chan<- Update) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return &SourceError{Source: "dbus", Message: "failed to connect to session bus", Err: err}
	}
	defer conn.Close()

	if err := s.monitor(conn); err != nil {
		return &SourceError{Source: "dbus", Message: "failed to observe notifications", Err: err}
	}

	ch := make(chan *dbus.Message, 100)
	conn.Eavesdrop(ch)

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			if !isNotify(msg) {
				continue
			}
			u, ok := parseNotify(msg.Body)
			if !ok {
				s.logger.Warn("malformed Notify call", "body_len", len(msg.Body))
				continue
			}
			s.logger.Debug("captured notification", "text", u.Text)
			if err := send(ctx, out, u); err != nil {
				return nil
			}

		case <-ctx.Done():
			return nil
		}
	}
}

// monitor turns conn into a bus monitor for Notify calls.
func (s *DBusSource) monitor(conn *dbus.Conn) error {
	rules := []string{
		fmt.Sprintf("type='method_call',interface='%s',member='%s'", notificationsInterface, notifyMember),
	}

	err := conn.BusObject().Call("org.freedesktop.DBus.Monitoring.BecomeMonitor", 0, rules, uint32(0)).Err
	if err == nil {
		s.logger.Info("started D-Bus monitor using BecomeMonitor")
		return nil
	}

	// Older buses lack BecomeMonitor; eavesdropping match rules still work
	// where policy allows it.
	s.logger.Warn("BecomeMonitor not available, trying AddMatch", "error", err)
	rule := rules[0] + ",eavesdrop='true'"
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return fmt.Errorf("failed to add match rule (eavesdrop may require permissions): %w", err)
	}
	s.logger.Info("started D-Bus monitor using AddMatch with eavesdrop")
	return nil
}

func isNotify(msg *dbus.Message) bool {
	if msg.Type != dbus.TypeMethodCall {
		return false
	}
	iface, ok := msg.Headers[dbus.FieldInterface]
	if !ok || iface.Value() != notificationsInterface {
		return false
	}
	member, ok := msg.Headers[dbus.FieldMember]
	return ok && member.Value() == notifyMember
}

// parseNotify builds an update from the arguments of
// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout).
// A progress "value" hint below 100 turns the spinner on; 100 turns it off.
func parseNotify(body []any) (Update, bool) {
	if len(body) < 8 {
		return Update{}, false
	}
	app, ok := body[0].(string)
	if !ok {
		return Update{}, false
	}
	summary, ok := body[3].(string)
	if !ok {
		return Update{}, false
	}

	text := summary
	if app != "" {
		text = app + ": " + summary
	}
	u, ok := ParseLine(text)
	if !ok {
		return Update{}, false
	}

	if hints, ok := body[6].(map[string]dbus.Variant); ok {
		if v, ok := hints["value"]; ok {
			if progress, ok := progressValue(v.Value()); ok {
				u.Activity = ptr(progress < 100)
			}
		}
	}
	return u, true
}

func progressValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
