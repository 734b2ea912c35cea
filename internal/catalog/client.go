package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mtgtools/revealsim/internal/card"
)

// ErrNotFound means the card name does not exist upstream.
var ErrNotFound = errors.New("card not found")

// Lookup resolves a card name to its attributes.
// Implementations must return ErrNotFound (possibly wrapped) for unknown
// names and plain errors for transport failures.
type Lookup interface {
	Lookup(ctx context.Context, name string) (card.Card, error)
}

// DefaultBaseURL points at the public Scryfall API.
const DefaultBaseURL = "https://api.scryfall.com"

// Client resolves card names against a Scryfall-compatible HTTP API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client for the given base URL ("" → DefaultBaseURL).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// namedResp mirrors the fields we need from the /cards/named payload.
type namedResp struct {
	Name     string  `json:"name"`
	CMC      float64 `json:"cmc"`
	TypeLine string  `json:"type_line"`
}

// Lookup fetches a card by exact name. Types are derived from the type line
// by substring containment (see card.ParseTypeLine).
func (c *Client) Lookup(ctx context.Context, name string) (card.Card, error) {
	u := c.BaseURL + "/cards/named?exact=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return card.Card{}, fmt.Errorf("lookup %q: %w", name, err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return card.Card{}, fmt.Errorf("lookup %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return card.Card{}, fmt.Errorf("lookup %q: %w", name, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return card.Card{}, fmt.Errorf("lookup %q: unexpected status %d", name, resp.StatusCode)
	}

	var body namedResp
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return card.Card{}, fmt.Errorf("lookup %q: decode: %w", name, err)
	}
	return card.Card{
		Name:      body.Name,
		ManaValue: body.CMC,
		Types:     card.ParseTypeLine(body.TypeLine),
	}, nil
}
