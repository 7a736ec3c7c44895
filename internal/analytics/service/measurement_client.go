package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
	apperrors "github.com/allisson/analytics-relay/internal/errors"
)

// MeasurementClientConfig holds the transport settings for collect requests.
type MeasurementClientConfig struct {
	// Endpoint is the Measurement Protocol collection endpoint.
	Endpoint string
	// Timeout bounds each collect request. Defaults to 5 seconds.
	Timeout time.Duration
}

// GAClient implements MeasurementClient for the Google Analytics Measurement
// Protocol (version 1). One purchase hit is delivered as a single URL-encoded
// POST. The client accumulates identity, transaction, and product state
// across setter calls; use a fresh instance per destination account.
type GAClient struct {
	endpoint   string
	httpClient *http.Client

	trackingID        string
	clientID          string
	userID            string
	ipOverride        string
	userAgentOverride string
	documentPath      string

	transactionID string
	affiliation   string
	couponCode    string
	revenue       string
	tax           string
	shipping      string

	products     []analyticsDomain.LineItem
	productCount int
}

// NewGAClient creates a Measurement Protocol client for one destination.
func NewGAClient(cfg MeasurementClientConfig) *GAClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &GAClient{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetTrackingData configures the destination account and visitor identity.
// Returns ErrMissingTrackingID when no tracking id is present and
// ErrMissingClientIdentity when neither a client id nor a user id is present.
// Optional fields are applied only when present; absent fields keep their
// previous value.
func (c *GAClient) SetTrackingData(data analyticsDomain.TrackingData) error {
	if data.TrackingID == "" {
		return analyticsDomain.ErrMissingTrackingID
	}

	if data.ClientID == "" && data.UserID == "" {
		return analyticsDomain.ErrMissingClientIdentity
	}

	c.trackingID = data.TrackingID
	c.ipOverride = data.IPOverride

	if data.ClientID != "" {
		c.clientID = data.ClientID
	}

	if data.UserID != "" {
		c.userID = data.UserID
	}

	if data.UserAgentOverride != "" {
		c.userAgentOverride = data.UserAgentOverride
	}

	if data.DocumentPath != "" {
		c.documentPath = data.DocumentPath
	}

	return nil
}

// SetTransactionData configures the transaction summary fields. The coupon
// code is set only when present.
func (c *GAClient) SetTransactionData(report analyticsDomain.TransactionReport) {
	c.transactionID = report.TransactionID
	c.affiliation = report.Affiliation
	c.revenue = report.Revenue.StringFixed(2)
	c.tax = report.Tax.StringFixed(2)
	c.shipping = report.Shipping.StringFixed(2)

	if report.CouponCode != "" {
		c.couponCode = report.CouponCode
	}
}

// AddProducts appends line items to the pending hit.
func (c *GAClient) AddProducts(items []analyticsDomain.LineItem) {
	for _, item := range items {
		c.products = append(c.products, item)
		c.productCount++
	}
}

// SendPurchase validates the accumulated state, marks the hit as a purchase
// action tagged "Checkout"/"Purchase", and performs the network send. The
// validation repeats the dispatcher's pre-checks as a final guard before the
// hit is written.
func (c *GAClient) SendPurchase(ctx context.Context) (*CollectResponse, error) {
	if c.transactionID == "" {
		return nil, apperrors.Wrap(analyticsDomain.ErrMissingTrackingID, "no transaction id set")
	}

	if c.clientID == "" && c.userID == "" {
		return nil, apperrors.Wrap(
			analyticsDomain.ErrMissingClientIdentity,
			fmt.Sprintf("transaction %s", c.transactionID),
		)
	}

	if c.trackingID == "" {
		return nil, apperrors.Wrap(
			analyticsDomain.ErrMissingTrackingID,
			fmt.Sprintf("transaction %s", c.transactionID),
		)
	}

	if c.productCount == 0 {
		return nil, apperrors.Wrap(
			analyticsDomain.ErrNoProductsAdded,
			fmt.Sprintf("transaction %s", c.transactionID),
		)
	}

	payload := c.buildPayload()
	requestURL := c.endpoint + "?" + payload.Encode()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint,
		strings.NewReader(payload.Encode()),
	)
	if err != nil {
		return nil, apperrors.Wrap(analyticsDomain.ErrTransportFailure, err.Error())
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(analyticsDomain.ErrTransportFailure, err.Error())
	}
	defer resp.Body.Close()

	// The collector's response is not validated, only captured for optional
	// debug logging.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, apperrors.Wrap(analyticsDomain.ErrTransportFailure, err.Error())
	}

	return &CollectResponse{
		StatusCode:   resp.StatusCode,
		RequestURL:   requestURL,
		DebugPayload: string(body),
	}, nil
}

// buildPayload renders the accumulated state as Measurement Protocol fields.
func (c *GAClient) buildPayload() url.Values {
	values := url.Values{}

	values.Set("v", ProtocolVersion)
	values.Set("tid", c.trackingID)

	if c.clientID != "" {
		values.Set("cid", c.clientID)
	}
	if c.userID != "" {
		values.Set("uid", c.userID)
	}
	if c.ipOverride != "" {
		values.Set("uip", c.ipOverride)
	}
	if c.userAgentOverride != "" {
		values.Set("ua", c.userAgentOverride)
	}
	if c.documentPath != "" {
		values.Set("dp", c.documentPath)
	}

	values.Set("t", "event")
	values.Set("ec", "Checkout")
	values.Set("ea", "Purchase")
	values.Set("pa", "purchase")

	values.Set("ti", c.transactionID)
	if c.affiliation != "" {
		values.Set("ta", c.affiliation)
	}
	values.Set("tr", c.revenue)
	values.Set("tt", c.tax)
	values.Set("ts", c.shipping)
	if c.couponCode != "" {
		values.Set("tcc", c.couponCode)
	}

	for i, product := range c.products {
		prefix := "pr" + strconv.Itoa(i+1)
		values.Set(prefix+"id", product.SKU)
		values.Set(prefix+"nm", product.Name)
		values.Set(prefix+"pr", product.Price.StringFixed(2))
		values.Set(prefix+"qt", product.Quantity.String())
		values.Set(prefix+"ps", strconv.Itoa(product.Position))
	}

	return values
}
