/*
Package quote orchestrates the full quoting flow for a merchant.

A quote run resolves the destination's fee schedule for the merchant's
category and tier, solves for the tax-and-fee-inclusive retail price that
hits the merchant's target margin, persists the result with a snapshot of
the schedule it was priced against, and emits a lifecycle event.

Usage:

	svc := quote.NewService(merchantRepo, quoteRepo, counter, resolver, solver, publisher, logger, metrics)

	// Price and persist a draft quote
	resp, err := svc.CreateQuote(ctx, merchantID, input)

	// Promote a draft once the listing goes live
	resp, err = svc.ConfirmQuote(ctx, merchantID, resp.QuoteID)

	// Explore without persisting
	resp, err = svc.PreviewQuote(ctx, merchantID, previewInput)

Confirmation is what advances the merchant's per-period order count, so the
order-processing-fee waiver always reflects confirmed business, not drafts.

Error Handling:

The service passes engine sentinels through unchanged
(schedule.ErrUnknownCountry, schedule.ErrInvalidCategory,
pricing.ErrDegenerateSchedule) and maps persistence failures to the shared
domain errors (ErrQuoteNotFound, ErrQuoteForbidden, ErrQuoteNotDraft).

Events:

Every create, confirm and delete publishes to the quote events topic. A
publish failure is logged and never fails the operation; the database row is
the source of truth.
*/
package quote
