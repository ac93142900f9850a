// Package exchange implements the token-exchange collaborator over
// HTTP: one POST that trades a reservation id for a session token.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	widgeterrors "github.com/jrsteele09/go-auth-widget/internal/errors"
	"github.com/jrsteele09/go-auth-widget/session"
	"github.com/jrsteele09/go-auth-widget/token"
)

const defaultTimeout = 10 * time.Second

var _ session.Exchanger = (*Client)(nil)

// Client swaps a one-time reservation id for a raw session token. There
// is no retry or backoff: a failed exchange leaves the widget logged out
// until the user explicitly logs in again.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates an exchange client posting to endpoint.
func NewClient(endpoint string, options ...ClientOption) *Client {
	client := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// exchangeResponse is the expected success body. Any other shape is a
// fetch failure.
type exchangeResponse struct {
	AccessToken string `json:"accessToken"`
}

// Exchange posts {reservationId} and returns the accessToken from the
// response body.
func (c *Client) Exchange(ctx context.Context, reservationID string) (string, error) {
	body, err := json.Marshal(token.EncodeReservationRequest(reservationID))
	if err != nil {
		return "", errors.Wrap(err, "[Client.Exchange] marshal request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "[Client.Exchange] build request")
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("endpoint", c.endpoint).Msg("posting reservation id")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "[Client.Exchange] post")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Wrapf(widgeterrors.ErrExchangeFailed, "[Client.Exchange] unexpected status %d", resp.StatusCode)
	}

	var decoded exchangeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", errors.Wrap(err, "[Client.Exchange] decode response")
	}
	if decoded.AccessToken == "" {
		return "", widgeterrors.ErrEmptyAccessToken
	}
	return decoded.AccessToken, nil
}
