package quote

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crossquote/internal/errors"
	"crossquote/internal/events"
	"crossquote/internal/models"
	"crossquote/internal/repositories"
	"crossquote/internal/services/pricing"
	"crossquote/internal/services/schedule"
)

type service struct {
	merchantRepo repositories.MerchantRepository
	quoteRepo    repositories.QuoteRepository
	counter      repositories.OrderCounter
	resolver     schedule.Resolver
	solver       *pricing.Solver
	publisher    events.Publisher
	logger       *zap.Logger
	metrics      MetricsCollector
}

// NewService creates a new quote service
func NewService(
	merchantRepo repositories.MerchantRepository,
	quoteRepo repositories.QuoteRepository,
	counter repositories.OrderCounter,
	resolver schedule.Resolver,
	solver *pricing.Solver,
	publisher events.Publisher,
	logger *zap.Logger,
	metrics MetricsCollector,
) Service {
	if merchantRepo == nil {
		panic("merchant repo is required")
	}
	if quoteRepo == nil {
		panic("quote repo is required")
	}
	if counter == nil {
		panic("order counter is required")
	}
	if resolver == nil {
		panic("schedule resolver is required")
	}
	if publisher == nil {
		panic("event publisher is required")
	}

	if solver == nil {
		solver = pricing.NewSolver()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		merchantRepo: merchantRepo,
		quoteRepo:    quoteRepo,
		counter:      counter,
		resolver:     resolver,
		solver:       solver,
		publisher:    publisher,
		logger:       logger,
		metrics:      metrics,
	}
}

func (s *service) CreateQuote(ctx context.Context, merchantID uint, input *models.QuoteInput) (*QuoteResponse, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("create_quote", time.Since(start)) }()

	merchant, sched, req, err := s.prepare(ctx, merchantID, input)
	if err != nil {
		s.metrics.RecordOperationResult("create_quote", "error")
		return nil, err
	}

	result, err := s.solver.Solve(sched, req)
	if err != nil {
		s.metrics.RecordOperationResult("create_quote", "error")
		return nil, err
	}
	s.metrics.RecordSolve(sched.Country, result.Iterations, result.Converged)

	if !result.Converged {
		s.logger.Warn("solver did not converge",
			zap.String("country", sched.Country),
			zap.Uint("merchant_id", merchantID),
			zap.Int("iterations", result.Iterations),
		)
	}

	quote := buildQuote(merchant, sched, req, result)
	if err := s.quoteRepo.Create(quote); err != nil {
		s.metrics.RecordOperationResult("create_quote", "error")
		return nil, fmt.Errorf("persist quote: %w", err)
	}

	s.publish(ctx, events.EventQuoteCreated, quote)
	s.metrics.RecordOperationResult("create_quote", "success")

	s.logger.Info("quote created",
		zap.String("quote_id", quote.QuoteID),
		zap.Uint("merchant_id", merchantID),
		zap.String("country", quote.Country),
		zap.Float64("retail_price", quote.RetailPrice),
		zap.Int("iterations", quote.Iterations),
	)

	return responseFromQuote(quote), nil
}

func (s *service) PreviewQuote(ctx context.Context, merchantID uint, input *models.PreviewInput) (*QuoteResponse, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("preview_quote", time.Since(start)) }()

	_, sched, req, err := s.prepare(ctx, merchantID, &input.QuoteInput)
	if err != nil {
		return nil, err
	}

	var result *pricing.Result
	if input.RetailPrice != nil {
		result, err = s.solver.EvaluateAt(sched, req, *input.RetailPrice)
	} else {
		result, err = s.solver.Solve(sched, req)
	}
	if err != nil {
		return nil, err
	}
	s.metrics.RecordSolve(sched.Country, result.Iterations, result.Converged)

	dutyRate := req.DutyRate
	echo := input.QuoteInput
	echo.DutyRate = &dutyRate

	return &QuoteResponse{
		Status:    StatusPreview,
		Country:   sched.Country,
		Currency:  sched.Currency,
		Category:  string(sched.Category),
		Tier:      string(sched.Tier),
		Input:     echo,
		Schedule:  newScheduleDTO(sched),
		Breakdown: breakdownFromResult(result),
	}, nil
}

func (s *service) ConfirmQuote(ctx context.Context, merchantID uint, quoteID string) (*QuoteResponse, error) {
	quote, err := s.ownedQuote(merchantID, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Status != models.QuoteStatusDraft {
		return nil, errors.ErrQuoteNotDraft
	}

	// Counter first; a failed row update can only overcount the period.
	count, err := s.counter.Increment(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("advance order counter: %w", err)
	}

	now := time.Now().UTC()
	quote.Status = models.QuoteStatusConfirmed
	quote.ConfirmedAt = &now
	if err := s.quoteRepo.Update(quote); err != nil {
		return nil, fmt.Errorf("confirm quote: %w", err)
	}

	s.publish(ctx, events.EventQuoteConfirmed, quote)

	s.logger.Info("quote confirmed",
		zap.String("quote_id", quote.QuoteID),
		zap.Uint("merchant_id", merchantID),
		zap.Int64("orders_this_period", count),
	)

	return responseFromQuote(quote), nil
}

func (s *service) DeleteQuote(ctx context.Context, merchantID uint, quoteID string) error {
	quote, err := s.ownedQuote(merchantID, quoteID)
	if err != nil {
		return err
	}
	if quote.Status != models.QuoteStatusDraft {
		return errors.ErrQuoteNotDraft
	}

	if err := s.quoteRepo.Delete(quote); err != nil {
		return fmt.Errorf("delete quote: %w", err)
	}

	s.publish(ctx, events.EventQuoteDeleted, quote)
	return nil
}

func (s *service) GetQuote(merchantID uint, quoteID string) (*QuoteResponse, error) {
	quote, err := s.ownedQuote(merchantID, quoteID)
	if err != nil {
		return nil, err
	}
	return responseFromQuote(quote), nil
}

func (s *service) ListQuotes(merchantID uint, filter repositories.QuoteFilter, offset, limit int) ([]*QuoteSummary, int64, error) {
	quotes, total, err := s.quoteRepo.ListByMerchant(merchantID, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}

	summaries := make([]*QuoteSummary, 0, len(quotes))
	for _, q := range quotes {
		summaries = append(summaries, summaryFromQuote(q))
	}
	return summaries, total, nil
}

// prepare loads the merchant, reads the period order count, resolves the
// destination schedule and assembles the solver request.
func (s *service) prepare(ctx context.Context, merchantID uint, input *models.QuoteInput) (*models.Merchant, *models.FeeSchedule, pricing.Request, error) {
	merchant, err := s.merchantRepo.GetByID(merchantID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrMerchantNotFound) {
			return nil, nil, pricing.Request{}, errors.ErrMerchantNotFound
		}
		return nil, nil, pricing.Request{}, fmt.Errorf("load merchant: %w", err)
	}

	// The counter is the system of record for the waiver; quoting with an
	// unknown count would misprice the fixed fees.
	orders, err := s.counter.Current(ctx, merchantID)
	if err != nil {
		return nil, nil, pricing.Request{}, fmt.Errorf("read order count: %w", err)
	}

	sched, err := s.resolver.Resolve(input.Country, models.Category(input.Category), merchant.SellerAttrs(orders))
	if err != nil {
		return nil, nil, pricing.Request{}, err
	}

	req := pricing.Request{
		PurchaseCost:     input.PurchaseCost,
		LogisticsCost:    input.LogisticsCost,
		TargetProfitRate: input.TargetProfitRate,
		DutyRate:         sched.DutyRateMax,
		SellerDiscount:   input.SellerDiscount,
		PlatformSubsidy:  input.PlatformSubsidy,
		ReturnRate:       input.ReturnRate,
	}
	if input.DutyRate != nil {
		req.DutyRate = *input.DutyRate
	}

	return merchant, sched, req, nil
}

func (s *service) ownedQuote(merchantID uint, quoteID string) (*models.Quote, error) {
	quote, err := s.quoteRepo.GetByQuoteID(quoteID)
	if err != nil {
		if stderrors.Is(err, repositories.ErrQuoteNotFound) {
			return nil, errors.ErrQuoteNotFound
		}
		return nil, fmt.Errorf("load quote: %w", err)
	}
	if quote.MerchantID != merchantID {
		return nil, errors.ErrQuoteForbidden
	}
	return quote, nil
}

// publish emits a lifecycle event. The row is the source of truth; a
// publish failure is logged, never surfaced.
func (s *service) publish(ctx context.Context, event string, quote *models.Quote) {
	if err := s.publisher.PublishQuoteEvent(ctx, event, quote); err != nil {
		s.logger.Warn("publish quote event",
			zap.String("event", event),
			zap.String("quote_id", quote.QuoteID),
			zap.Error(err),
		)
	}
}

func buildQuote(merchant *models.Merchant, sched *models.FeeSchedule, req pricing.Request, result *pricing.Result) *models.Quote {
	return &models.Quote{
		QuoteID:    uuid.NewString(),
		MerchantID: merchant.ID,
		Status:     models.QuoteStatusDraft,

		Country:  sched.Country,
		Currency: sched.Currency,
		Category: string(sched.Category),
		Tier:     string(sched.Tier),

		PurchaseCost:     req.PurchaseCost,
		LogisticsCost:    req.LogisticsCost,
		TargetProfitRate: req.TargetProfitRate,
		DutyRate:         req.DutyRate,
		SellerDiscount:   req.SellerDiscount,
		PlatformSubsidy:  req.PlatformSubsidy,
		ReturnRate:       req.ReturnRate,

		RetailPrice:        result.RetailPrice,
		PreTaxPrice:        result.PreTaxPrice,
		DiscountedPrice:    result.DiscountedPrice,
		CostBase:           result.CostBase,
		ImportDuty:         result.ImportDuty,
		ImportVAT:          result.ImportVAT,
		ImportTax:          result.ImportTax,
		SalesVAT:           result.SalesVAT,
		Commission:         result.Commission,
		GrowthFee:          result.GrowthFee,
		TransactionFee:     result.TransactionFee,
		InfrastructureFee:  result.InfrastructureFee,
		OrderProcessingFee: result.OrderProcessingFee,
		FixedFees:          result.InfrastructureFee + result.OrderProcessingFee,
		TotalFees:          result.TotalFees,
		TargetRevenue:      result.TargetRevenue,
		NetRevenue:         result.NetRevenue,
		NetProfit:          result.NetProfit,
		ProfitRate:         result.ProfitRate,
		ReturnCost:         result.ReturnCost,
		AdjustedProfit:     result.AdjustedProfit,
		AdjustedProfitRate: result.AdjustedProfitRate,
		Iterations:         result.Iterations,
		Converged:          result.Converged,

		ScheduleSnapshot: scheduleSnapshot(sched),
	}
}
