package app

import (
	"fmt"

	analyticsHTTP "github.com/allisson/analytics-relay/internal/analytics/http"
	analyticsService "github.com/allisson/analytics-relay/internal/analytics/service"
	analyticsUseCase "github.com/allisson/analytics-relay/internal/analytics/usecase"
)

// MeasurementClientFactory returns the factory that produces a fresh
// Measurement Protocol client per destination account.
func (c *Container) MeasurementClientFactory() analyticsService.MeasurementClientFactory {
	endpoint := c.config.CollectEndpoint()
	timeout := c.config.GACollectTimeout

	return func() analyticsService.MeasurementClient {
		return analyticsService.NewGAClient(analyticsService.MeasurementClientConfig{
			Endpoint: endpoint,
			Timeout:  timeout,
		})
	}
}

// Dispatcher returns the purchase event dispatcher.
func (c *Container) Dispatcher() *analyticsUseCase.Dispatcher {
	return analyticsUseCase.NewDispatcher(
		analyticsUseCase.DispatcherConfig{
			Enabled:        c.config.GAEnabled,
			DebugMode:      c.config.GADebugMode,
			RequestLogging: c.config.GAEnableRequestLogging,
			DocumentPath:   c.config.CheckoutSuccessPath,
		},
		c.MeasurementClientFactory(),
		c.Logger(),
	)
}

// PurchaseUseCase returns the purchase event use case instance.
func (c *Container) PurchaseUseCase() (analyticsUseCase.PurchaseUseCase, error) {
	c.purchaseUCInit.Do(func() {
		useCase, err := c.initPurchaseUseCase()
		if err != nil {
			c.initErrors["purchaseUseCase"] = err
			return
		}
		c.purchaseUC = useCase
	})
	if storedErr, exists := c.initErrors["purchaseUseCase"]; exists {
		return nil, storedErr
	}
	return c.purchaseUC, nil
}

// EventHandler returns the webhook event handler instance.
func (c *Container) EventHandler() (*analyticsHTTP.EventHandler, error) {
	c.eventHandlerInit.Do(func() {
		handler, err := c.initEventHandler()
		if err != nil {
			c.initErrors["eventHandler"] = err
			return
		}
		c.eventHandler = handler
	})
	if storedErr, exists := c.initErrors["eventHandler"]; exists {
		return nil, storedErr
	}
	return c.eventHandler, nil
}

// initPurchaseUseCase creates the purchase use case with all its dependencies.
func (c *Container) initPurchaseUseCase() (analyticsUseCase.PurchaseUseCase, error) {
	attributions, err := c.AttributionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get attribution use case for purchase use case: %w", err)
	}

	useCase := analyticsUseCase.NewPurchaseUseCase(
		c.config,
		analyticsUseCase.NewPayloadBuilder(),
		c.Dispatcher(),
		attributions,
		c.Logger(),
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for purchase use case: %w", err)
	}
	if businessMetrics != nil {
		useCase = analyticsUseCase.NewMetricsDecorator(useCase, businessMetrics)
	}

	return useCase, nil
}

// initEventHandler creates the webhook event handler with all its dependencies.
func (c *Container) initEventHandler() (*analyticsHTTP.EventHandler, error) {
	attributions, err := c.AttributionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get attribution use case for event handler: %w", err)
	}

	purchases, err := c.PurchaseUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase use case for event handler: %w", err)
	}

	return analyticsHTTP.NewEventHandler(attributions, purchases, c.Logger()), nil
}
