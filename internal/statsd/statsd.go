package statsd

import (
	"net"
	"strconv"

	"github.com/DieOfCode/haproxy-statsd/internal/metrics"
	"github.com/pkg/errors"
)

// Client sends metrics to a statsd daemon, one UDP datagram per metric.
// Nothing is acknowledged or retried.
type Client struct {
	conn net.Conn
	addr string
}

func New(host string, port int) (*Client, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open statsd socket %s", addr)
	}

	return &Client{
		conn: conn,
		addr: addr,
	}, nil
}

func (c *Client) Send(m metrics.Metric) error {
	if _, err := c.conn.Write([]byte(m.Packet())); err != nil {
		return errors.Wrapf(err, "failed to send %s to %s", m.Path, c.addr)
	}
	return nil
}

func (c *Client) Addr() string {
	return c.addr
}

func (c *Client) Close() error {
	return c.conn.Close()
}
