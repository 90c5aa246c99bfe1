package infra_catalog_imdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/humanbelnik/watchnext/internal/config"
	"github.com/humanbelnik/watchnext/internal/model"
)

var (
	ErrEmptyPersonID = errors.New("empty person id")
	ErrTransport     = errors.New("catalog request failed")
	ErrStatus        = errors.New("catalog responded with unexpected status")
	ErrDecode        = errors.New("unable to decode catalog response")
)

const (
	headerAPIKey  = "x-rapidapi-key"
	headerAPIHost = "x-rapidapi-host"
)

// Client reads filmographies from the RapidAPI IMDb catalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	apiHost    string
	logger     *slog.Logger
}

type ClientOption func(*Client)

func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(cfg config.Catalog, opts ...ClientOption) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		apiHost:    cfg.APIHost,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchTitlesForPerson returns every title the person is credited in,
// in catalog order. Entries without an id are dropped.
func (c *Client) FetchTitlesForPerson(ctx context.Context, personID string) ([]model.Title, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return nil, ErrEmptyPersonID
	}

	reqURL := fmt.Sprintf("%s/api/imdb/cast/%s/titles", c.baseURL, url.PathEscape(personID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerAPIHost, c.apiHost)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed",
			slog.String("person_id", personID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	var dtos []titleDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	titles := make([]model.Title, 0, len(dtos))
	for _, d := range dtos {
		if d.ID == "" {
			c.logger.Warn("catalog entry without id skipped",
				slog.String("person_id", personID),
				slog.String("title", d.PrimaryTitle))
			continue
		}
		titles = append(titles, d.toModel())
	}

	return titles, nil
}
