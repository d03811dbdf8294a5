package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"utm-dashboard/internal/common/clientprotocol"
	"utm-dashboard/internal/common/shopifyprotocol"
	"utm-dashboard/internal/dashboard/normalize"
	"utm-dashboard/pkg/logging"
	"utm-dashboard/pkg/timeutils"
)

const (
	accessTokenHeader = "X-Shopify-Access-Token"
	maxPageSize       = 250
)

type Config struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// Client talks to the store's admin API: paginated REST order fetch, the
// order-count probe, and the bulk-operation lifecycle (bulk.go).
type Client struct {
	cfg        Config
	http       *resty.Client
	normalizer *normalize.Normalizer
	logger     *logging.ZapLogger
}

func New(cfg Config, normalizer *normalize.Normalizer, logger *logging.ZapLogger) *Client {
	return &Client{
		cfg:        cfg,
		http:       resty.New().SetHeader(accessTokenHeader, cfg.AccessToken),
		normalizer: normalizer,
		logger:     logger,
	}
}

func (c *Client) baseURL() string {
	domain := c.cfg.ShopDomain
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	return fmt.Sprintf("%s/admin/api/%s", domain, c.cfg.APIVersion)
}

func (c *Client) checkCredentials() error {
	if c.cfg.ShopDomain == "" || c.cfg.AccessToken == "" {
		return ErrMissingCredentials
	}
	return nil
}

// FetchAll retrieves every order in the range, following the upstream
// "next" links strictly one page at a time, normalizing as pages arrive.
// A positive resultCap truncates mid-page without requesting further
// pages. Rows come back in upstream delivery order; sorting is the
// caller's concern. Any non-success page aborts the whole fetch.
func (c *Client) FetchAll(ctx context.Context, dr timeutils.DateRange, resultCap int) ([]clientprotocol.OrderRow, error) {
	if err := c.checkCredentials(); err != nil {
		return nil, err
	}

	rows := make([]clientprotocol.OrderRow, 0)
	req := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"status":         "any",
			"limit":          fmt.Sprintf("%d", maxPageSize),
			"created_at_min": dr.StartRFC3339(),
			"created_at_max": dr.EndRFC3339(),
		})
	url := c.baseURL() + "/orders.json"

	for {
		resp, err := req.Get(url)
		if err != nil {
			return nil, fmt.Errorf("orders page request failed: %w", err)
		}
		if !resp.IsSuccess() {
			return nil, &RequestError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
		}

		page := shopifyprotocol.OrdersPage{}
		if err := json.Unmarshal(resp.Body(), &page); err != nil {
			return nil, fmt.Errorf("error unmarshalling orders page: %w", err)
		}
		c.logger.DebugCtx(ctx, "fetched orders page", zap.Int("orders", len(page.Orders)))

		for _, raw := range page.Orders {
			rows = append(rows, c.normalizer.Normalize(raw))
			if resultCap > 0 && len(rows) >= resultCap {
				return rows, nil
			}
		}

		next := nextPageURL(resp.Header().Get("Link"))
		if next == "" {
			return rows, nil
		}
		url = next
		req = c.http.R().SetContext(ctx)
	}
}

// Count asks the platform for its authoritative order count in the range.
// A missing or invalid count is an error; callers decide whether that is
// fatal.
func (c *Client) Count(ctx context.Context, dr timeutils.DateRange) (int, error) {
	if err := c.checkCredentials(); err != nil {
		return 0, err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"status":         "any",
			"created_at_min": dr.StartRFC3339(),
			"created_at_max": dr.EndRFC3339(),
		}).
		Get(c.baseURL() + "/orders/count.json")
	if err != nil {
		return 0, fmt.Errorf("count request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return 0, &RequestError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	count := shopifyprotocol.OrdersCount{}
	if err := json.Unmarshal(resp.Body(), &count); err != nil {
		return 0, fmt.Errorf("error unmarshalling count response: %w", err)
	}
	if count.Count == nil || *count.Count < 0 {
		return 0, ErrCountUnavailable
	}
	return *count.Count, nil
}

// nextPageURL extracts the rel="next" target from a Link header of the
// form `<url>; rel="previous", <url>; rel="next"`.
func nextPageURL(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start == -1 || end == -1 || end <= start {
			continue
		}
		return part[start+1 : end]
	}
	return ""
}
