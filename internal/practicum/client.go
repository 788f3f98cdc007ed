package practicum

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"homework-bot/internal/apperrors"
	"homework-bot/internal/config"

	"golang.org/x/oauth2"
)

// tokenType makes oauth2 emit "Authorization: OAuth <token>" instead of Bearer.
const tokenType = "OAuth"

type Client struct {
	Endpoint string
	HTTP     *http.Client
}

// NewClient returns a client authenticated with the Practicum OAuth token.
func NewClient(ctx context.Context, cfg *config.Config) *Client {
	base := &http.Client{Timeout: cfg.HTTPTimeout}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)

	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.PracticumToken,
		TokenType:   tokenType,
	})
	hc := oauth2.NewClient(ctx, ts)
	hc.Timeout = cfg.HTTPTimeout

	return &Client{
		Endpoint: cfg.Endpoint,
		HTTP:     hc,
	}
}

// Fetch requests homework statuses updated since from and returns the raw JSON body.
func (c *Client) Fetch(ctx context.Context, from int64) (json.RawMessage, error) {
	const op = "fetch"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, op, err)
	}
	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(from, 10))
	req.URL.RawQuery = q.Encode()

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransport, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Newf(apperrors.KindHTTPStatus, op,
			"endpoint %s is unavailable, status code %d", c.Endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransport, op, err)
	}

	if !json.Valid(body) {
		return nil, &apperrors.Error{Kind: apperrors.KindMalformedPayload, Op: op}
	}

	return json.RawMessage(body), nil
}
