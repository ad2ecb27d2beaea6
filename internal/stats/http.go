package stats

import (
	"bytes"
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

var ErrUnexpectedStatus = errors.New("unexpected status code")

// HTTPSource reads the CSV export of the HAProxy stats page.
type HTTPSource struct {
	url    string
	client *resty.Client
}

// NewHTTPSource creates a source for url. Basic auth is used when user is
// not empty.
func NewHTTPSource(url, user, password string, timeout time.Duration) *HTTPSource {
	client := resty.New().
		SetTimeout(timeout).
		SetDisableWarn(true)
	if user != "" {
		client.SetBasicAuth(user, password)
	}

	return &HTTPSource{
		url:    url,
		client: client,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]Row, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(s.url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get stats report %s", s.url)
	}

	if !resp.IsSuccess() {
		return nil, errors.Wrapf(ErrUnexpectedStatus, "stats report %s: %s", s.url, resp.Status())
	}

	return ParseCSV(bytes.NewReader(resp.Body())), nil
}
