package libevt

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

type (
	// DialParams holds what a Socket needs to open a connection.
	DialParams struct {
		URL    url.URL
		Header http.Header
	}

	// DialParamsGetter resolves DialParams before every dial, so tokens or
	// endpoints may change between reconnects.
	DialParamsGetter func(ctx context.Context) (DialParams, error)
)

// StaticDialParams returns a getter that always yields the same URL and header.
func StaticDialParams(rawURL string, header http.Header) (DialParamsGetter, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid socket url %q", rawURL)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, errors.Errorf("invalid socket url %q: scheme must be ws or wss", rawURL)
	}
	p := DialParams{URL: *u, Header: header.Clone()}
	return func(context.Context) (DialParams, error) {
		return p, nil
	}, nil
}
