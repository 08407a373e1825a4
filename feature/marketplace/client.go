package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"marketsync/core/catalog"
	"marketsync/core/dispatch"
	"marketsync/core/reconcile"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	pathProductList  = "/v3/product/list"
	pathImportStocks = "/v2/products/stocks"
	pathImportPrices = "/v1/product/import/prices"
	pathCreateItems  = "/v3/product/import"
)

// Client talks to the marketplace seller API. It implements both the
// catalog read side and the dispatcher's write side.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// NewClient creates a seller API client. A nil httpClient gets a default
// with the configured timeout.
func NewClient(cfg Config, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{cfg: cfg, http: httpClient, log: log}
}

// FetchCatalogSnapshot pages through the seller catalog with the last_id
// cursor until the final page.
func (c *Client) FetchCatalogSnapshot(ctx context.Context) ([]catalog.RawRecord, error) {
	limit := c.cfg.PageLimit
	if limit <= 0 {
		limit = 1000
	}

	var records []catalog.RawRecord
	lastID := ""
	for {
		var resp snapshotResponse
		err := c.do(ctx, pathProductList, snapshotRequest{LastID: lastID, Limit: limit}, &resp)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch catalog page: %w", err)
		}

		for _, item := range resp.Result.Items {
			records = append(records, catalog.RawRecord{
				SKU:      item.OfferID,
				Quantity: item.Stock,
				Price:    item.Price,
			})
		}

		if len(resp.Result.Items) < limit || resp.Result.LastID == "" {
			break
		}
		lastID = resp.Result.LastID
	}

	c.log.Debug("fetched catalog snapshot", zap.Int("records", len(records)))
	return records, nil
}

// ApplyBatch submits the batch's stock and price changes through the bulk
// import endpoints and folds both per-item verdicts into one result.
func (c *Client) ApplyBatch(ctx context.Context, batch reconcile.Batch) (*dispatch.BatchResult, error) {
	var stocks []stockEntry
	var prices []priceEntry
	for _, op := range batch.Ops {
		switch op.Type {
		case reconcile.OpUpdateQuantity:
			stocks = append(stocks, stockEntry{OfferID: op.SKU, Stock: op.NewQuantity})
		case reconcile.OpZeroOut:
			stocks = append(stocks, stockEntry{OfferID: op.SKU, Stock: 0})
		case reconcile.OpUpdatePrice:
			prices = append(prices, priceEntry{OfferID: op.SKU, Price: op.NewPrice.String()})
		}
	}

	rejected := make(map[string]string)

	if len(stocks) > 0 {
		var res importResult
		if err := c.do(ctx, pathImportStocks, stocksRequest{Stocks: stocks}, &res); err != nil {
			return nil, fmt.Errorf("failed to import stocks: %w", err)
		}
		collectRejections(res, rejected)
	}

	if len(prices) > 0 {
		var res importResult
		if err := c.do(ctx, pathImportPrices, pricesRequest{Prices: prices}, &res); err != nil {
			return nil, fmt.Errorf("failed to import prices: %w", err)
		}
		collectRejections(res, rejected)
	}

	result := &dispatch.BatchResult{}
	for sku, kind := range rejected {
		result.Items = append(result.Items, dispatch.ItemResult{
			SKU:       sku,
			Accepted:  false,
			ErrorKind: kind,
		})
	}
	return result, nil
}

// CreateListing onboards one new item with its supplier stock and price.
func (c *Client) CreateListing(ctx context.Context, sku string, quantity int, price decimal.Decimal) error {
	req := createRequest{Items: []createItem{{
		OfferID: sku,
		Stock:   quantity,
		Price:   price.String(),
	}}}
	if err := c.do(ctx, pathCreateItems, req, nil); err != nil {
		return fmt.Errorf("failed to create listing %s: %w", sku, err)
	}
	return nil
}

func collectRejections(res importResult, rejected map[string]string) {
	for _, item := range res.Result {
		if item.Updated {
			continue
		}
		kind := "rejected"
		if len(item.Errors) > 0 && item.Errors[0].Code != "" {
			kind = item.Errors[0].Code
		}
		rejected[item.OfferID] = kind
	}
}

// do posts one JSON request and decodes the response. Network failures,
// rate limits and server errors come back wrapped in
// dispatch.TransientError so the dispatcher retries them.
func (c *Client) do(ctx context.Context, path string, body, out interface{}) error {
	if c.cfg.BaseURL == "" {
		return errors.New("marketplace base url is not configured")
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Client-Id", c.cfg.ClientID)
	req.Header.Set("Api-Key", c.cfg.ApiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return &dispatch.TransientError{Err: fmt.Errorf("request to %s failed: %w", path, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &dispatch.TransientError{Err: fmt.Errorf("failed to read response from %s: %w", path, err)}
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return &dispatch.TransientError{Err: fmt.Errorf("%s returned status %d", path, resp.StatusCode)}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, bytes.TrimSpace(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}
