package quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"crossquote/internal/errors"
	"crossquote/internal/events"
	"crossquote/internal/models"
	"crossquote/internal/repositories"
	"crossquote/internal/services/pricing"
	"crossquote/internal/services/schedule"
)

type MockMerchantRepo struct {
	mock.Mock
}

type MockQuoteRepo struct {
	mock.Mock
}

type MockOrderCounter struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

func newTestService(merchants *MockMerchantRepo, quotes *MockQuoteRepo, counter *MockOrderCounter, publisher *MockPublisher) Service {
	return NewService(merchants, quotes, counter, schedule.NewResolver(), pricing.NewSolver(), publisher, zap.NewNop(), nil)
}

func testMerchant() *models.Merchant {
	m := &models.Merchant{
		Email:        "seller@example.com",
		BusinessName: "Siam Gadgets",
		Country:      "TH",
		SellerTier:   string(models.TierStandard),
		SignupDate:   time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
		Role:         models.RoleMerchant,
		Status:       models.MerchantStatusActive,
		TokenVersion: 1,
	}
	m.ID = 1
	return m
}

func baselineInput() *models.QuoteInput {
	duty := 0.30
	return &models.QuoteInput{
		Country:          "TH",
		Category:         "electronics",
		PurchaseCost:     20,
		LogisticsCost:    5.5,
		TargetProfitRate: 0.30,
		DutyRate:         &duty,
	}
}

func storedQuote(merchantID uint, status string) *models.Quote {
	q := &models.Quote{
		QuoteID:          "8f14e45f-ea0f-4a39-9f3a-0c5c1a2b7d10",
		MerchantID:       merchantID,
		Status:           status,
		Country:          "TH",
		Currency:         "THB",
		Category:         "electronics",
		Tier:             "standard",
		PurchaseCost:     20,
		LogisticsCost:    5.5,
		TargetProfitRate: 0.30,
		DutyRate:         0.30,
		RetailPrice:      54.31,
		NetRevenue:       33.15,
		ProfitRate:       0.30,
		Converged:        true,
		ScheduleSnapshot: models.JSON{
			"country":                     "TH",
			"currency":                    "THB",
			"category":                    "electronics",
			"tier":                        "standard",
			"commission_rate":             0.0642,
			"growth_service_rate":         0.0642,
			"growth_service_cap":          199.0,
			"transaction_fee_rate":        0.0321,
			"vat_rate":                    0.07,
			"infrastructure_fee":          1.07,
			"order_processing_fee":        5.35,
			"order_processing_fee_waived": true,
		},
	}
	q.ID = 7
	return q
}

func TestQuoteService_CreateQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a thailand draft", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		merchants.On("GetByID", uint(1)).Return(testMerchant(), nil)
		counter.On("Current", mock.Anything, uint(1)).Return(3, nil)

		var persisted *models.Quote
		quotes.On("Create", mock.AnythingOfType("*models.Quote")).Run(func(args mock.Arguments) {
			persisted = args.Get(0).(*models.Quote)
		}).Return(nil)
		publisher.On("PublishQuoteEvent", mock.Anything, events.EventQuoteCreated, mock.AnythingOfType("*models.Quote")).Return(nil)

		svc := newTestService(merchants, quotes, counter, publisher)
		resp, err := svc.CreateQuote(ctx, 1, baselineInput())
		require.NoError(t, err)

		assert.Equal(t, models.QuoteStatusDraft, resp.Status)
		assert.NotEmpty(t, resp.QuoteID)
		assert.Equal(t, "TH", resp.Country)
		assert.Equal(t, "THB", resp.Currency)

		// 3 confirmed orders this period, well under the free-order
		// threshold, so the processing fee drops out of the price.
		assert.True(t, resp.Schedule.OrderProcessingFeeWaived)
		assert.Zero(t, resp.Breakdown.OrderProcessingFee)

		assert.InDelta(t, 54.31, resp.Breakdown.RetailPrice, 0.01)
		assert.InDelta(t, 33.15, resp.Breakdown.NetRevenue, 0.01)
		assert.InDelta(t, 7.82, resp.Breakdown.ImportTax, 0.001)
		assert.True(t, resp.Breakdown.Converged)
		assert.Equal(t, 1, resp.Breakdown.Iterations)

		require.NotNil(t, persisted)
		assert.Equal(t, resp.QuoteID, persisted.QuoteID)
		assert.InDelta(t, resp.Breakdown.RetailPrice, persisted.RetailPrice, 1e-9)

		merchants.AssertExpectations(t)
		quotes.AssertExpectations(t)
		counter.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("orders above the threshold pay the processing fee", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		merchants.On("GetByID", uint(1)).Return(testMerchant(), nil)
		counter.On("Current", mock.Anything, uint(1)).Return(51, nil)
		quotes.On("Create", mock.AnythingOfType("*models.Quote")).Return(nil)
		publisher.On("PublishQuoteEvent", mock.Anything, events.EventQuoteCreated, mock.AnythingOfType("*models.Quote")).Return(nil)

		svc := newTestService(merchants, quotes, counter, publisher)
		resp, err := svc.CreateQuote(ctx, 1, baselineInput())
		require.NoError(t, err)

		assert.False(t, resp.Schedule.OrderProcessingFeeWaived)
		assert.InDelta(t, 5.35, resp.Breakdown.OrderProcessingFee, 1e-9)
		assert.InDelta(t, 33.15, resp.Breakdown.NetRevenue, 0.01)
		assert.Greater(t, resp.Breakdown.RetailPrice, 54.32)
	})

	t.Run("uncapped destination stores a nil cap", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		merchants.On("GetByID", uint(1)).Return(testMerchant(), nil)
		counter.On("Current", mock.Anything, uint(1)).Return(3, nil)

		var persisted *models.Quote
		quotes.On("Create", mock.AnythingOfType("*models.Quote")).Run(func(args mock.Arguments) {
			persisted = args.Get(0).(*models.Quote)
		}).Return(nil)
		publisher.On("PublishQuoteEvent", mock.Anything, events.EventQuoteCreated, mock.AnythingOfType("*models.Quote")).Return(nil)

		input := baselineInput()
		input.Country = "SG"
		input.DutyRate = nil

		svc := newTestService(merchants, quotes, counter, publisher)
		resp, err := svc.CreateQuote(ctx, 1, input)
		require.NoError(t, err)

		assert.Nil(t, resp.Schedule.GrowthServiceCap)
		require.NotNil(t, persisted)
		assert.Nil(t, persisted.ScheduleSnapshot["growth_service_cap"])
		assert.InDelta(t, 33.15, resp.Breakdown.NetRevenue, 0.01)
	})

	t.Run("unknown country", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		merchants.On("GetByID", uint(1)).Return(testMerchant(), nil)
		counter.On("Current", mock.Anything, uint(1)).Return(0, nil)

		input := baselineInput()
		input.Country = "ZZ"

		svc := newTestService(merchants, quotes, counter, publisher)
		_, err := svc.CreateQuote(ctx, 1, input)
		assert.ErrorIs(t, err, schedule.ErrUnknownCountry)
		quotes.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("merchant missing", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		merchants.On("GetByID", uint(42)).Return(nil, repositories.ErrMerchantNotFound)

		svc := newTestService(merchants, quotes, counter, publisher)
		_, err := svc.CreateQuote(ctx, 42, baselineInput())
		assert.ErrorIs(t, err, errors.ErrMerchantNotFound)
	})

	t.Run("counter failure blocks quoting", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		merchants.On("GetByID", uint(1)).Return(testMerchant(), nil)
		counter.On("Current", mock.Anything, uint(1)).Return(0, assert.AnError)

		svc := newTestService(merchants, quotes, counter, publisher)
		_, err := svc.CreateQuote(ctx, 1, baselineInput())
		assert.Error(t, err)
		quotes.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("publish failure does not fail the quote", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		merchants.On("GetByID", uint(1)).Return(testMerchant(), nil)
		counter.On("Current", mock.Anything, uint(1)).Return(3, nil)
		quotes.On("Create", mock.AnythingOfType("*models.Quote")).Return(nil)
		publisher.On("PublishQuoteEvent", mock.Anything, events.EventQuoteCreated, mock.AnythingOfType("*models.Quote")).Return(assert.AnError)

		svc := newTestService(merchants, quotes, counter, publisher)
		resp, err := svc.CreateQuote(ctx, 1, baselineInput())
		require.NoError(t, err)
		assert.Equal(t, models.QuoteStatusDraft, resp.Status)
	})
}

func TestQuoteService_ConfirmQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms a draft", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		draft := storedQuote(1, models.QuoteStatusDraft)
		quotes.On("GetByQuoteID", draft.QuoteID).Return(draft, nil)
		counter.On("Increment", mock.Anything, uint(1)).Return(int64(4), nil)
		quotes.On("Update", mock.AnythingOfType("*models.Quote")).Return(nil)
		publisher.On("PublishQuoteEvent", mock.Anything, events.EventQuoteConfirmed, mock.AnythingOfType("*models.Quote")).Return(nil)

		svc := newTestService(merchants, quotes, counter, publisher)
		resp, err := svc.ConfirmQuote(ctx, 1, draft.QuoteID)
		require.NoError(t, err)

		assert.Equal(t, models.QuoteStatusConfirmed, resp.Status)
		assert.NotNil(t, resp.ConfirmedAt)

		quotes.AssertExpectations(t)
		counter.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("rejects another merchant's quote", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		draft := storedQuote(99, models.QuoteStatusDraft)
		quotes.On("GetByQuoteID", draft.QuoteID).Return(draft, nil)

		svc := newTestService(merchants, quotes, counter, publisher)
		_, err := svc.ConfirmQuote(ctx, 1, draft.QuoteID)
		assert.ErrorIs(t, err, errors.ErrQuoteForbidden)
		counter.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
	})

	t.Run("rejects a double confirm", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		confirmed := storedQuote(1, models.QuoteStatusConfirmed)
		quotes.On("GetByQuoteID", confirmed.QuoteID).Return(confirmed, nil)

		svc := newTestService(merchants, quotes, counter, publisher)
		_, err := svc.ConfirmQuote(ctx, 1, confirmed.QuoteID)
		assert.ErrorIs(t, err, errors.ErrQuoteNotDraft)
		counter.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
	})

	t.Run("counter failure blocks confirmation", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		draft := storedQuote(1, models.QuoteStatusDraft)
		quotes.On("GetByQuoteID", draft.QuoteID).Return(draft, nil)
		counter.On("Increment", mock.Anything, uint(1)).Return(int64(0), assert.AnError)

		svc := newTestService(merchants, quotes, counter, publisher)
		_, err := svc.ConfirmQuote(ctx, 1, draft.QuoteID)
		assert.Error(t, err)
		quotes.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestQuoteService_DeleteQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes a draft", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		draft := storedQuote(1, models.QuoteStatusDraft)
		quotes.On("GetByQuoteID", draft.QuoteID).Return(draft, nil)
		quotes.On("Delete", draft).Return(nil)
		publisher.On("PublishQuoteEvent", mock.Anything, events.EventQuoteDeleted, draft).Return(nil)

		svc := newTestService(merchants, quotes, counter, publisher)
		err := svc.DeleteQuote(ctx, 1, draft.QuoteID)
		require.NoError(t, err)
		quotes.AssertExpectations(t)
	})

	t.Run("refuses to delete a confirmed quote", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		confirmed := storedQuote(1, models.QuoteStatusConfirmed)
		quotes.On("GetByQuoteID", confirmed.QuoteID).Return(confirmed, nil)

		svc := newTestService(merchants, quotes, counter, publisher)
		err := svc.DeleteQuote(ctx, 1, confirmed.QuoteID)
		assert.ErrorIs(t, err, errors.ErrQuoteNotDraft)
		quotes.AssertNotCalled(t, "Delete", mock.Anything)
	})
}

func TestQuoteService_GetQuote(t *testing.T) {
	t.Run("rebuilds the schedule from the snapshot", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		stored := storedQuote(1, models.QuoteStatusConfirmed)
		quotes.On("GetByQuoteID", stored.QuoteID).Return(stored, nil)

		svc := newTestService(merchants, quotes, counter, publisher)
		resp, err := svc.GetQuote(1, stored.QuoteID)
		require.NoError(t, err)

		assert.Equal(t, "TH", resp.Schedule.Country)
		assert.InDelta(t, 0.0642, resp.Schedule.CommissionRate, 1e-9)
		require.NotNil(t, resp.Schedule.GrowthServiceCap)
		assert.InDelta(t, 199.0, *resp.Schedule.GrowthServiceCap, 1e-9)
		assert.True(t, resp.Schedule.OrderProcessingFeeWaived)
		require.NotNil(t, resp.Input.DutyRate)
		assert.InDelta(t, 0.30, *resp.Input.DutyRate, 1e-9)
	})

	t.Run("missing quote", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		quotes.On("GetByQuoteID", "nope").Return(nil, repositories.ErrQuoteNotFound)

		svc := newTestService(merchants, quotes, counter, publisher)
		_, err := svc.GetQuote(1, "nope")
		assert.ErrorIs(t, err, errors.ErrQuoteNotFound)
	})
}

func TestQuoteService_ListQuotes(t *testing.T) {
	merchants := new(MockMerchantRepo)
	quotes := new(MockQuoteRepo)
	counter := new(MockOrderCounter)
	publisher := new(MockPublisher)

	rows := []*models.Quote{
		storedQuote(1, models.QuoteStatusConfirmed),
		storedQuote(1, models.QuoteStatusDraft),
	}
	filter := repositories.QuoteFilter{Status: models.QuoteStatusDraft}
	quotes.On("ListByMerchant", uint(1), filter, 0, 10).Return(rows, int64(7), nil)

	svc := newTestService(merchants, quotes, counter, publisher)
	summaries, total, err := svc.ListQuotes(1, filter, 0, 10)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)
	assert.Equal(t, int64(7), total)
	assert.Equal(t, rows[0].QuoteID, summaries[0].QuoteID)
}

func TestQuoteService_PreviewQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("solves without persisting", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		merchants.On("GetByID", uint(1)).Return(testMerchant(), nil)
		counter.On("Current", mock.Anything, uint(1)).Return(3, nil)

		input := &models.PreviewInput{QuoteInput: *baselineInput()}

		svc := newTestService(merchants, quotes, counter, publisher)
		resp, err := svc.PreviewQuote(ctx, 1, input)
		require.NoError(t, err)

		assert.Equal(t, StatusPreview, resp.Status)
		assert.Empty(t, resp.QuoteID)
		assert.InDelta(t, 54.31, resp.Breakdown.RetailPrice, 0.01)
		quotes.AssertNotCalled(t, "Create", mock.Anything)
		publisher.AssertNotCalled(t, "PublishQuoteEvent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("evaluates at a fixed price", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		merchants.On("GetByID", uint(1)).Return(testMerchant(), nil)
		counter.On("Current", mock.Anything, uint(1)).Return(3, nil)

		price := 60.0
		input := &models.PreviewInput{QuoteInput: *baselineInput(), RetailPrice: &price}

		svc := newTestService(merchants, quotes, counter, publisher)
		resp, err := svc.PreviewQuote(ctx, 1, input)
		require.NoError(t, err)

		assert.InDelta(t, 60.0, resp.Breakdown.RetailPrice, 1e-9)
		// Above the solved price, so the merchant clears more than target.
		assert.Greater(t, resp.Breakdown.NetRevenue, 33.15)
	})

	t.Run("defaults the duty rate to the top of the band", func(t *testing.T) {
		merchants := new(MockMerchantRepo)
		quotes := new(MockQuoteRepo)
		counter := new(MockOrderCounter)
		publisher := new(MockPublisher)

		merchants.On("GetByID", uint(1)).Return(testMerchant(), nil)
		counter.On("Current", mock.Anything, uint(1)).Return(3, nil)

		base := baselineInput()
		base.DutyRate = nil
		input := &models.PreviewInput{QuoteInput: *base}

		svc := newTestService(merchants, quotes, counter, publisher)
		resp, err := svc.PreviewQuote(ctx, 1, input)
		require.NoError(t, err)

		require.NotNil(t, resp.Input.DutyRate)
		assert.InDelta(t, 0.30, *resp.Input.DutyRate, 1e-9)
	})
}

// Mock implementations

func (m *MockMerchantRepo) Create(merchant *models.Merchant) error {
	return m.Called(merchant).Error(0)
}

func (m *MockMerchantRepo) GetByID(id uint) (*models.Merchant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Merchant), args.Error(1)
}

func (m *MockMerchantRepo) GetByEmail(email string) (*models.Merchant, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Merchant), args.Error(1)
}

func (m *MockMerchantRepo) Update(merchant *models.Merchant) error {
	return m.Called(merchant).Error(0)
}

func (m *MockMerchantRepo) IncrementTokenVersion(merchantID uint) error {
	return m.Called(merchantID).Error(0)
}

func (m *MockMerchantRepo) UpdatePassword(merchantID uint, hashedPassword string) error {
	return m.Called(merchantID, hashedPassword).Error(0)
}

func (m *MockMerchantRepo) List(offset, limit int) ([]*models.Merchant, int64, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Merchant), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuoteRepo) Create(quote *models.Quote) error {
	return m.Called(quote).Error(0)
}

func (m *MockQuoteRepo) GetByQuoteID(quoteID string) (*models.Quote, error) {
	args := m.Called(quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quote), args.Error(1)
}

func (m *MockQuoteRepo) ListByMerchant(merchantID uint, filter repositories.QuoteFilter, offset, limit int) ([]*models.Quote, int64, error) {
	args := m.Called(merchantID, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Quote), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuoteRepo) AllByMerchant(merchantID uint) ([]*models.Quote, error) {
	args := m.Called(merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quote), args.Error(1)
}

func (m *MockQuoteRepo) Update(quote *models.Quote) error {
	return m.Called(quote).Error(0)
}

func (m *MockQuoteRepo) Delete(quote *models.Quote) error {
	return m.Called(quote).Error(0)
}

func (m *MockOrderCounter) Increment(ctx context.Context, merchantID uint) (int64, error) {
	args := m.Called(ctx, merchantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderCounter) Current(ctx context.Context, merchantID uint) (int, error) {
	args := m.Called(ctx, merchantID)
	return args.Int(0), args.Error(1)
}

func (m *MockPublisher) PublishQuoteEvent(ctx context.Context, event string, quote *models.Quote) error {
	return m.Called(ctx, event, quote).Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}
