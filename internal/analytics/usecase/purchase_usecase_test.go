package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	analyticsDomain "github.com/allisson/analytics-relay/internal/analytics/domain"
	analyticsService "github.com/allisson/analytics-relay/internal/analytics/service"
	"github.com/allisson/analytics-relay/internal/config"
	apperrors "github.com/allisson/analytics-relay/internal/errors"
)

type mockAttributionLookup struct {
	mock.Mock
}

func (m *mockAttributionLookup) ClientID(ctx context.Context, orderID string) (string, error) {
	args := m.Called(ctx, orderID)
	return args.String(0), args.Error(1)
}

func purchaseTestConfig() *config.Config {
	return &config.Config{
		GAEnabled:      true,
		GATrackingIDs:  "UA-1",
		TaxDisplayMode: "including_tax",
	}
}

func purchaseTestDispatcher(t *testing.T, clients []*mockMeasurementClient) *Dispatcher {
	return NewDispatcher(
		DispatcherConfig{Enabled: true, DocumentPath: "/checkout/onepage/success/"},
		queueFactory(t, clients),
		testLogger(),
	)
}

func TestPurchaseUseCase_HandlePaymentCaptured(t *testing.T) {
	input := PurchaseEventInput{
		Order:    testOrder(),
		Invoice:  testInvoice(),
		ClientID: "987654321.1609459200",
	}

	t.Run("dispatches purchase event with inline identity", func(t *testing.T) {
		client := &mockMeasurementClient{}
		client.On("SetTransactionData", mock.Anything).Return()
		client.On("AddProducts", mock.Anything).Return()
		var captured analyticsDomain.TrackingData
		client.On("SetTrackingData", mock.Anything).Run(func(args mock.Arguments) {
			captured = args.Get(0).(analyticsDomain.TrackingData)
		}).Return(nil)
		client.On("SendPurchase", mock.Anything).Return(&analyticsService.CollectResponse{StatusCode: 200}, nil)

		attributions := &mockAttributionLookup{}
		useCase := NewPurchaseUseCase(
			purchaseTestConfig(),
			NewPayloadBuilder(),
			purchaseTestDispatcher(t, []*mockMeasurementClient{client}),
			attributions,
			testLogger(),
		)

		outcomes, err := useCase.HandlePaymentCaptured(context.Background(), input)

		require.NoError(t, err)
		require.Len(t, outcomes, 1)
		assert.True(t, outcomes[0].Succeeded())
		assert.Equal(t, "987654321.1609459200", captured.ClientID)
		assert.Equal(t, "203.0.113.7", captured.IPOverride)
		attributions.AssertNotCalled(t, "ClientID", mock.Anything, mock.Anything)
	})

	t.Run("falls back to stored attribution when identity is absent", func(t *testing.T) {
		client := &mockMeasurementClient{}
		client.On("SetTransactionData", mock.Anything).Return()
		client.On("AddProducts", mock.Anything).Return()
		var captured analyticsDomain.TrackingData
		client.On("SetTrackingData", mock.Anything).Run(func(args mock.Arguments) {
			captured = args.Get(0).(analyticsDomain.TrackingData)
		}).Return(nil)
		client.On("SendPurchase", mock.Anything).Return(&analyticsService.CollectResponse{StatusCode: 200}, nil)

		attributions := &mockAttributionLookup{}
		attributions.On("ClientID", mock.Anything, "100000001").Return("555.1700000000", nil)

		storedInput := input
		storedInput.ClientID = ""

		useCase := NewPurchaseUseCase(
			purchaseTestConfig(),
			NewPayloadBuilder(),
			purchaseTestDispatcher(t, []*mockMeasurementClient{client}),
			attributions,
			testLogger(),
		)

		outcomes, err := useCase.HandlePaymentCaptured(context.Background(), storedInput)

		require.NoError(t, err)
		require.Len(t, outcomes, 1)
		assert.Equal(t, "555.1700000000", captured.ClientID)
		attributions.AssertExpectations(t)
	})

	t.Run("no stored attribution is a silent no-op", func(t *testing.T) {
		attributions := &mockAttributionLookup{}
		attributions.On("ClientID", mock.Anything, "100000001").
			Return("", apperrors.Wrap(apperrors.ErrNotFound, "order attribution"))

		storedInput := input
		storedInput.ClientID = ""

		useCase := NewPurchaseUseCase(
			purchaseTestConfig(),
			NewPayloadBuilder(),
			purchaseTestDispatcher(t, nil),
			attributions,
			testLogger(),
		)

		outcomes, err := useCase.HandlePaymentCaptured(context.Background(), storedInput)

		assert.NoError(t, err)
		assert.Nil(t, outcomes)
	})

	t.Run("attribution lookup failure is returned", func(t *testing.T) {
		attributions := &mockAttributionLookup{}
		attributions.On("ClientID", mock.Anything, "100000001").
			Return("", apperrors.Wrap(apperrors.ErrUnavailable, "attribution lookup"))

		storedInput := input
		storedInput.ClientID = ""

		useCase := NewPurchaseUseCase(
			purchaseTestConfig(),
			NewPayloadBuilder(),
			purchaseTestDispatcher(t, nil),
			attributions,
			testLogger(),
		)

		outcomes, err := useCase.HandlePaymentCaptured(context.Background(), storedInput)

		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.Nil(t, outcomes)
	})

	t.Run("tracking disabled is a silent no-op", func(t *testing.T) {
		cfg := purchaseTestConfig()
		cfg.GAEnabled = false

		useCase := NewPurchaseUseCase(
			cfg,
			NewPayloadBuilder(),
			purchaseTestDispatcher(t, nil),
			&mockAttributionLookup{},
			testLogger(),
		)

		outcomes, err := useCase.HandlePaymentCaptured(context.Background(), input)

		assert.NoError(t, err)
		assert.Nil(t, outcomes)
	})

	t.Run("no configured accounts is a silent no-op", func(t *testing.T) {
		cfg := purchaseTestConfig()
		cfg.GATrackingIDs = ""

		useCase := NewPurchaseUseCase(
			cfg,
			NewPayloadBuilder(),
			purchaseTestDispatcher(t, nil),
			&mockAttributionLookup{},
			testLogger(),
		)

		outcomes, err := useCase.HandlePaymentCaptured(context.Background(), input)

		assert.NoError(t, err)
		assert.Nil(t, outcomes)
	})

	t.Run("one outcome per configured account with failures isolated", func(t *testing.T) {
		failing := &mockMeasurementClient{}
		failing.On("SetTransactionData", mock.Anything).Return()
		failing.On("AddProducts", mock.Anything).Return()
		failing.On("SetTrackingData", mock.Anything).Return(nil)
		failing.On("SendPurchase", mock.Anything).Return(nil, analyticsDomain.ErrTransportFailure)

		succeeding := &mockMeasurementClient{}
		succeeding.On("SetTransactionData", mock.Anything).Return()
		succeeding.On("AddProducts", mock.Anything).Return()
		succeeding.On("SetTrackingData", mock.Anything).Return(nil)
		succeeding.On("SendPurchase", mock.Anything).Return(&analyticsService.CollectResponse{StatusCode: 200}, nil)

		cfg := purchaseTestConfig()
		cfg.GATrackingIDs = "UA-1, UA-2"

		useCase := NewPurchaseUseCase(
			cfg,
			NewPayloadBuilder(),
			purchaseTestDispatcher(t, []*mockMeasurementClient{failing, succeeding}),
			&mockAttributionLookup{},
			testLogger(),
		)

		outcomes, err := useCase.HandlePaymentCaptured(context.Background(), input)

		require.NoError(t, err)
		require.Len(t, outcomes, 2)
		assert.False(t, outcomes[0].Succeeded())
		assert.True(t, outcomes[1].Succeeded())
	})
}
