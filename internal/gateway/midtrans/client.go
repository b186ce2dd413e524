package midtrans

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client queries the provider's transaction-status API. It authenticates with
// the server key as HTTP basic auth user, the provider's scheme.
type Client struct {
	baseURL   string
	serverKey string
	http      *http.Client
}

func NewClient(baseURL string, serverKey string) *Client {
	return &Client{
		baseURL:   baseURL,
		serverKey: serverKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// Status fetches the provider's current view of the transaction keyed by our
// order ID.
func (c *Client) Status(ctx context.Context, orderID string) (TransactionStatus, error) {
	url := fmt.Sprintf("%s/v2/%s/status", c.baseURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return TransactionStatus{}, err
	}
	req.SetBasicAuth(c.serverKey, "")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return TransactionStatus{}, fmt.Errorf("status query for order %s: %w", orderID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return TransactionStatus{}, fmt.Errorf("status query for order %s: provider returned %d", orderID, resp.StatusCode)
	}

	var txn TransactionStatus
	if err := json.NewDecoder(resp.Body).Decode(&txn); err != nil {
		return TransactionStatus{}, fmt.Errorf("status query for order %s: decode: %w", orderID, err)
	}

	return txn, nil
}
