// Package ynab implements the YNAB v1 API client used by the report
// service. Responses are the API's `{"data": ...}` envelopes; amounts
// stay in milliunits at this boundary.
package ynab

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/budgetbot/ynab-reporter/internal/config"
	"github.com/budgetbot/ynab-reporter/internal/models"
	"github.com/sirupsen/logrus"
)

// defaultBudgetID asks the client to resolve the first budget on the
// account instead of a concrete budget id.
const defaultBudgetID = "default"

// Client handles integration with the YNAB API.
type Client struct {
	baseURL  string
	token    string
	budgetID string
	client   *http.Client
	log      *logrus.Logger

	resolvedBudgetID string
}

// NewClient initializes a new YNAB client.
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		baseURL:  cfg.YNABBaseURL,
		token:    cfg.YNABAPIToken,
		budgetID: cfg.YNABBudgetID,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

type errorResponse struct {
	Error struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Detail string `json:"detail"`
	} `json:"error"`
}

// get performs a GET request against the API and decodes the `data`
// envelope into out.
func (c *Client) get(endpoint string, query url.Values, out any) error {
	u := fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %v", err)
	}
	c.log.Debugf("YNAB response from %s: %s", endpoint, string(body))

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Name != "" {
			return fmt.Errorf("YNAB API error %s: %s (%s)", apiErr.Error.ID, apiErr.Error.Name, apiErr.Error.Detail)
		}
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to parse response: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to parse response data: %v", err)
	}
	return nil
}

// BudgetID returns the configured budget id, resolving "default" to
// the first budget on the account. The resolution is cached for the
// client's lifetime.
func (c *Client) BudgetID() (string, error) {
	if c.budgetID != defaultBudgetID {
		return c.budgetID, nil
	}
	if c.resolvedBudgetID != "" {
		return c.resolvedBudgetID, nil
	}

	var data struct {
		Budgets []struct {
			ID string `json:"id"`
		} `json:"budgets"`
	}
	if err := c.get("budgets", nil, &data); err != nil {
		return "", err
	}
	if len(data.Budgets) == 0 {
		return "", fmt.Errorf("no budgets found for account")
	}
	c.resolvedBudgetID = data.Budgets[0].ID
	return c.resolvedBudgetID, nil
}

// Accounts returns all accounts of the budget.
func (c *Client) Accounts() ([]models.Account, error) {
	budgetID, err := c.BudgetID()
	if err != nil {
		return nil, err
	}
	var data struct {
		Accounts []models.Account `json:"accounts"`
	}
	if err := c.get(fmt.Sprintf("budgets/%s/accounts", budgetID), nil, &data); err != nil {
		return nil, err
	}
	return data.Accounts, nil
}

// Transactions returns the budget's transactions dated on or after
// since. Transactions without a date are rejected rather than skipped:
// every report buckets by date, so a missing one is a fatal shape
// error for the run.
func (c *Client) Transactions(since time.Time) ([]models.Transaction, error) {
	budgetID, err := c.BudgetID()
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	if !since.IsZero() {
		query.Set("since_date", since.Format("2006-01-02"))
	}

	var data struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := c.get(fmt.Sprintf("budgets/%s/transactions", budgetID), query, &data); err != nil {
		return nil, err
	}

	for _, t := range data.Transactions {
		if t.Date.IsZero() {
			return nil, fmt.Errorf("transaction %s has no date", t.ID)
		}
	}
	return data.Transactions, nil
}

// ScheduledTransactions returns all scheduled transactions of the
// budget.
func (c *Client) ScheduledTransactions() ([]models.ScheduledTransaction, error) {
	budgetID, err := c.BudgetID()
	if err != nil {
		return nil, err
	}
	var data struct {
		ScheduledTransactions []models.ScheduledTransaction `json:"scheduled_transactions"`
	}
	if err := c.get(fmt.Sprintf("budgets/%s/scheduled_transactions", budgetID), nil, &data); err != nil {
		return nil, err
	}
	return data.ScheduledTransactions, nil
}

// MonthBudget returns the category budget snapshots for the calendar
// month containing the given time.
func (c *Client) MonthBudget(month time.Time) ([]models.CategorySnapshot, error) {
	budgetID, err := c.BudgetID()
	if err != nil {
		return nil, err
	}

	firstOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	var data struct {
		Month struct {
			Categories []models.CategorySnapshot `json:"categories"`
		} `json:"month"`
	}
	endpoint := fmt.Sprintf("budgets/%s/months/%s", budgetID, firstOfMonth.Format("2006-01-02"))
	if err := c.get(endpoint, nil, &data); err != nil {
		return nil, err
	}
	return data.Month.Categories, nil
}
