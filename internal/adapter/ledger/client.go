// Package ledger implements the HTTPS client for the upstream ledger
// service. Fetch retry and backoff policy is out of scope here: each call
// is a single request, and the caller decides when to re-run.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/younes-makhtoum/flash-track-money-sub000/internal/domain"
)

// Client handles integration with the upstream ledger service
type Client struct {
	baseURL string
	token   string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new ledger client with bearer-token auth
func NewClient(baseURL, token string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

type transactionsResponse struct {
	Transactions []domain.RawEntry `json:"transactions"`
}

type assetsResponse struct {
	Assets []domain.AccountDirectoryEntry `json:"assets"`
}

type bankAccountsResponse struct {
	BankAccounts []domain.AccountDirectoryEntry `json:"bank_accounts"`
}

// Transactions fetches the current raw transaction batch
func (c *Client) Transactions(ctx context.Context) ([]domain.RawEntry, error) {
	var resp transactionsResponse
	if err := c.get(ctx, "/v1/transactions", &resp); err != nil {
		return nil, err
	}

	c.log.Debugf("Fetched %d raw entries", len(resp.Transactions))
	return resp.Transactions, nil
}

// AccountDirectory fetches manually managed assets and aggregator-linked
// bank accounts and merges them into the dual-keyed directory. Bank account
// rows are keyed by their aggregator id, which may collide numerically with
// internal asset ids.
func (c *Client) AccountDirectory(ctx context.Context) (*domain.AccountDirectory, error) {
	var assets assetsResponse
	if err := c.get(ctx, "/v1/assets", &assets); err != nil {
		return nil, err
	}

	var banks bankAccountsResponse
	if err := c.get(ctx, "/v1/bank_accounts", &banks); err != nil {
		return nil, err
	}

	entries := make([]domain.AccountDirectoryEntry, 0, len(assets.Assets)+len(banks.BankAccounts))
	entries = append(entries, assets.Assets...)
	for _, bank := range banks.BankAccounts {
		if bank.BankAccountID == nil {
			id := bank.ID
			bank.BankAccountID = &id
		}
		entries = append(entries, bank)
	}

	c.log.Debugf("Fetched account directory: %d assets, %d bank accounts",
		len(assets.Assets), len(banks.BankAccounts))
	return domain.NewAccountDirectory(entries), nil
}

// get performs an authenticated GET and decodes the JSON response
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
