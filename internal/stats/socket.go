package stats

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	ShowStat = "show stat"
	ShowInfo = "show info"
)

// SocketSource reads stats from the HAProxy stats socket. HAProxy closes a
// non interactive connection after answering, so every command uses its own
// connection.
type SocketSource struct {
	path    string
	timeout time.Duration
	dialer  net.Dialer
}

func NewSocketSource(path string, timeout time.Duration) *SocketSource {
	return &SocketSource{
		path:    path,
		timeout: timeout,
		dialer:  net.Dialer{Timeout: timeout},
	}
}

// Fetch returns the "show stat" rows followed by one row per "show info" fact.
func (s *SocketSource) Fetch(ctx context.Context) ([]Row, error) {
	stat, err := s.Communicate(ctx, ShowStat)
	if err != nil {
		return nil, err
	}
	rows := ParseCSV(bytes.NewReader(stat))

	info, err := s.Communicate(ctx, ShowInfo)
	if err != nil {
		return nil, err
	}
	rows = append(rows, ParseInfo(bytes.NewReader(info))...)

	return rows, nil
}

// Communicate sends a single command and returns the whole response.
func (s *SocketSource) Communicate(ctx context.Context, command string) ([]byte, error) {
	conn, err := s.dialer.DialContext(ctx, "unix", s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to stats socket %s", s.path)
	}
	defer conn.Close()

	if deadline, ok := s.deadline(ctx); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, errors.Wrap(err, "failed to set socket deadline")
		}
	}

	if !strings.HasSuffix(command, "\n") {
		command += "\n"
	}
	if _, err := io.WriteString(conn, command); err != nil {
		return nil, errors.Wrapf(err, "failed to send %q", strings.TrimSpace(command))
	}

	response, err := io.ReadAll(conn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response to %q", strings.TrimSpace(command))
	}

	return response, nil
}

func (s *SocketSource) deadline(ctx context.Context) (time.Time, bool) {
	deadline, ok := ctx.Deadline()
	if s.timeout > 0 {
		byTimeout := time.Now().Add(s.timeout)
		if !ok || byTimeout.Before(deadline) {
			return byTimeout, true
		}
	}
	return deadline, ok
}
