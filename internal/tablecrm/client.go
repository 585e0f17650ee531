package tablecrm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tablecrm_cashier/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://app.tablecrm.com/api/v1"

var (
	ErrMissingToken = errors.New("tablecrm token is required")
	ErrUnauthorized = errors.New("tablecrm unauthorized")
	ErrEmptyPhone   = errors.New("search phone is empty")
)

type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("tablecrm api error: %s", e.Status)
	}
	return fmt.Sprintf("tablecrm api error: %s: %s", e.Status, e.Body)
}

// Client talks to the TableCRM API. The token travels as the "token"
// query parameter on every request, which is how the service expects it.
type Client struct {
	http   *resty.Client
	token  string
	logger *zap.Logger
}

func NewClient(cfg config.Config, logger *zap.Logger) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(1).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			// Order submission is a best-effort single shot.
			if resp != nil && resp.Request != nil && resp.Request.Method != http.MethodGet {
				return false
			}
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode() == http.StatusTooManyRequests
		})

	return &Client{
		http:   httpClient,
		token:  strings.TrimSpace(cfg.Token),
		logger: logger.Named("tablecrm"),
	}
}

// WithToken returns a client bound to a different token. The session
// gate uses this to probe candidate tokens without mutating the base
// client.
func (c *Client) WithToken(token string) *Client {
	return &Client{
		http:   c.http,
		token:  strings.TrimSpace(token),
		logger: c.logger,
	}
}

// ListSalesDocuments fetches the sales history. It doubles as the
// token-validity probe: any failure means the token is not usable.
func (c *Client) ListSalesDocuments(ctx context.Context) ([]SalesDocument, error) {
	if !c.hasToken() {
		return nil, ErrMissingToken
	}

	var resp documentList
	if err := c.doGet(ctx, "/docs_sales/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

func (c *Client) SearchContragents(ctx context.Context, phone string) ([]Contragent, error) {
	if !c.hasToken() {
		return nil, ErrMissingToken
	}
	if strings.TrimSpace(phone) == "" {
		return nil, ErrEmptyPhone
	}

	var found []Contragent
	if err := c.doGet(ctx, "/contragents/", map[string]string{"phone": phone}, &found); err != nil {
		return nil, err
	}
	return found, nil
}

func (c *Client) CreateSalesDocument(ctx context.Context, payload SalesOrderPayload) error {
	if !c.hasToken() {
		return ErrMissingToken
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("token", c.token).
		SetBody(payload).
		Post("/docs_sales/")
	if err != nil {
		return fmt.Errorf("tablecrm request: %w", err)
	}
	if resp.IsError() {
		return apiErrorFromResponse(resp)
	}
	return nil
}

func (c *Client) doGet(ctx context.Context, path string, query map[string]string, result any) error {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("token", c.token).
		SetResult(result)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("tablecrm request: %w", err)
	}
	if resp.IsError() {
		return apiErrorFromResponse(resp)
	}
	return nil
}

func (c *Client) hasToken() bool {
	return c.token != ""
}

func apiErrorFromResponse(resp *resty.Response) error {
	body := strings.TrimSpace(resp.String())
	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       body,
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Error())
	default:
		return apiErr
	}
}
