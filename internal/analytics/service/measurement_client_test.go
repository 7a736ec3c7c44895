package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
)

// newCollector returns a test collector that captures the submitted hit.
func newCollector(t *testing.T, status int, body string) (*httptest.Server, *url.Values) {
	t.Helper()

	var captured url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		captured, err = url.ParseQuery(string(raw))
		require.NoError(t, err)

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, &captured
}

func newTestReport() analyticsDomain.TransactionReport {
	return analyticsDomain.TransactionReport{
		TransactionID: "100000001",
		Affiliation:   "Acme Store",
		Revenue:       decimal.RequireFromString("123.45"),
		Tax:           decimal.RequireFromString("20.45"),
		Shipping:      decimal.RequireFromString("5.00"),
		CouponCode:    "WELCOME10",
	}
}

func newTestItems() []analyticsDomain.LineItem {
	return []analyticsDomain.LineItem{
		{
			SKU:      "sku-1",
			Name:     "Widget",
			Price:    decimal.RequireFromString("100.00"),
			Quantity: decimal.NewFromInt(2),
			Position: 1,
		},
	}
}

func TestGAClient_SetTrackingData(t *testing.T) {
	t.Run("fails without tracking id", func(t *testing.T) {
		client := NewGAClient(MeasurementClientConfig{Endpoint: "http://collector"})

		err := client.SetTrackingData(analyticsDomain.TrackingData{ClientID: "1.2"})

		assert.ErrorIs(t, err, analyticsDomain.ErrMissingTrackingID)
	})

	t.Run("fails without client id or user id", func(t *testing.T) {
		client := NewGAClient(MeasurementClientConfig{Endpoint: "http://collector"})

		err := client.SetTrackingData(analyticsDomain.TrackingData{TrackingID: "UA-1"})

		assert.ErrorIs(t, err, analyticsDomain.ErrMissingClientIdentity)
	})

	t.Run("user id alone satisfies identity requirement", func(t *testing.T) {
		client := NewGAClient(MeasurementClientConfig{Endpoint: "http://collector"})

		err := client.SetTrackingData(analyticsDomain.TrackingData{TrackingID: "UA-1", UserID: "user-9"})

		assert.NoError(t, err)
	})

	t.Run("absent optional fields keep previous values", func(t *testing.T) {
		client := NewGAClient(MeasurementClientConfig{Endpoint: "http://collector"})

		err := client.SetTrackingData(analyticsDomain.TrackingData{
			TrackingID:        "UA-1",
			ClientID:          "987654321.1609459200",
			UserAgentOverride: "agent/1.0",
			DocumentPath:      "/checkout/onepage/success/",
		})
		require.NoError(t, err)

		// Partial update: only the tracking id changes.
		err = client.SetTrackingData(analyticsDomain.TrackingData{
			TrackingID: "UA-2",
			ClientID:   "987654321.1609459200",
		})
		require.NoError(t, err)

		assert.Equal(t, "UA-2", client.trackingID)
		assert.Equal(t, "agent/1.0", client.userAgentOverride)
		assert.Equal(t, "/checkout/onepage/success/", client.documentPath)
	})
}

func TestGAClient_SendPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers purchase hit with all fields", func(t *testing.T) {
		server, captured := newCollector(t, http.StatusOK, "")

		client := NewGAClient(MeasurementClientConfig{Endpoint: server.URL})
		client.SetTransactionData(newTestReport())
		client.AddProducts(newTestItems())
		require.NoError(t, client.SetTrackingData(analyticsDomain.TrackingData{
			TrackingID:   "UA-26293624-12",
			ClientID:     "987654321.1609459200",
			IPOverride:   "203.0.113.7",
			DocumentPath: "/checkout/onepage/success/",
		}))

		resp, err := client.SendPurchase(ctx)

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.RequestURL, server.URL)
		assert.Contains(t, resp.RequestURL, "tid=UA-26293624-12")

		hit := *captured
		assert.Equal(t, "1", hit.Get("v"))
		assert.Equal(t, "UA-26293624-12", hit.Get("tid"))
		assert.Equal(t, "987654321.1609459200", hit.Get("cid"))
		assert.Equal(t, "203.0.113.7", hit.Get("uip"))
		assert.Equal(t, "/checkout/onepage/success/", hit.Get("dp"))
		assert.Equal(t, "event", hit.Get("t"))
		assert.Equal(t, "Checkout", hit.Get("ec"))
		assert.Equal(t, "Purchase", hit.Get("ea"))
		assert.Equal(t, "purchase", hit.Get("pa"))
		assert.Equal(t, "100000001", hit.Get("ti"))
		assert.Equal(t, "Acme Store", hit.Get("ta"))
		assert.Equal(t, "123.45", hit.Get("tr"))
		assert.Equal(t, "20.45", hit.Get("tt"))
		assert.Equal(t, "5.00", hit.Get("ts"))
		assert.Equal(t, "WELCOME10", hit.Get("tcc"))
		assert.Equal(t, "sku-1", hit.Get("pr1id"))
		assert.Equal(t, "Widget", hit.Get("pr1nm"))
		assert.Equal(t, "100.00", hit.Get("pr1pr"))
		assert.Equal(t, "2", hit.Get("pr1qt"))
		assert.Equal(t, "1", hit.Get("pr1ps"))
	})

	t.Run("omits coupon code when absent", func(t *testing.T) {
		server, captured := newCollector(t, http.StatusOK, "")

		report := newTestReport()
		report.CouponCode = ""

		client := NewGAClient(MeasurementClientConfig{Endpoint: server.URL})
		client.SetTransactionData(report)
		client.AddProducts(newTestItems())
		require.NoError(t, client.SetTrackingData(analyticsDomain.TrackingData{
			TrackingID: "UA-1",
			ClientID:   "987654321.1609459200",
		}))

		_, err := client.SendPurchase(ctx)

		require.NoError(t, err)
		_, present := (*captured)["tcc"]
		assert.False(t, present)
	})

	t.Run("returns debug payload from validation endpoint", func(t *testing.T) {
		server, _ := newCollector(t, http.StatusOK, `{"hitParsingResult":[{"valid":true}]}`)

		client := NewGAClient(MeasurementClientConfig{Endpoint: server.URL})
		client.SetTransactionData(newTestReport())
		client.AddProducts(newTestItems())
		require.NoError(t, client.SetTrackingData(analyticsDomain.TrackingData{
			TrackingID: "UA-1",
			ClientID:   "987654321.1609459200",
		}))

		resp, err := client.SendPurchase(ctx)

		require.NoError(t, err)
		assert.Contains(t, resp.DebugPayload, "hitParsingResult")
	})

	t.Run("fails without transaction id", func(t *testing.T) {
		client := NewGAClient(MeasurementClientConfig{Endpoint: "http://collector"})
		client.AddProducts(newTestItems())
		require.NoError(t, client.SetTrackingData(analyticsDomain.TrackingData{
			TrackingID: "UA-1",
			ClientID:   "987654321.1609459200",
		}))

		_, err := client.SendPurchase(ctx)

		assert.ErrorIs(t, err, analyticsDomain.ErrMissingTrackingID)
	})

	t.Run("fails without client identity", func(t *testing.T) {
		client := NewGAClient(MeasurementClientConfig{Endpoint: "http://collector"})
		client.SetTransactionData(newTestReport())
		client.AddProducts(newTestItems())

		_, err := client.SendPurchase(ctx)

		assert.ErrorIs(t, err, analyticsDomain.ErrMissingClientIdentity)
	})

	t.Run("fails without products", func(t *testing.T) {
		client := NewGAClient(MeasurementClientConfig{Endpoint: "http://collector"})
		client.SetTransactionData(newTestReport())
		require.NoError(t, client.SetTrackingData(analyticsDomain.TrackingData{
			TrackingID: "UA-1",
			ClientID:   "987654321.1609459200",
		}))

		_, err := client.SendPurchase(ctx)

		assert.ErrorIs(t, err, analyticsDomain.ErrNoProductsAdded)
	})

	t.Run("unreachable collector returns transport failure", func(t *testing.T) {
		client := NewGAClient(MeasurementClientConfig{
			Endpoint: "http://127.0.0.1:1",
			Timeout:  500 * time.Millisecond,
		})
		client.SetTransactionData(newTestReport())
		client.AddProducts(newTestItems())
		require.NoError(t, client.SetTrackingData(analyticsDomain.TrackingData{
			TrackingID: "UA-1",
			ClientID:   "987654321.1609459200",
		}))

		_, err := client.SendPurchase(ctx)

		assert.ErrorIs(t, err, analyticsDomain.ErrTransportFailure)
	})

	t.Run("collector response status is not validated", func(t *testing.T) {
		server, _ := newCollector(t, http.StatusBadRequest, "")

		client := NewGAClient(MeasurementClientConfig{Endpoint: server.URL})
		client.SetTransactionData(newTestReport())
		client.AddProducts(newTestItems())
		require.NoError(t, client.SetTrackingData(analyticsDomain.TrackingData{
			TrackingID: "UA-1",
			ClientID:   "987654321.1609459200",
		}))

		resp, err := client.SendPurchase(ctx)

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGAClient_AddProducts(t *testing.T) {
	client := NewGAClient(MeasurementClientConfig{Endpoint: "http://collector"})

	client.AddProducts(newTestItems())
	client.AddProducts(newTestItems())

	// Each call appends, never replaces.
	assert.Equal(t, 2, client.productCount)
	assert.Len(t, client.products, 2)
}
