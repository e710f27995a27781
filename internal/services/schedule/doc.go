/*
Package schedule resolves country fee schedules for quote requests.

The resolver maps a (country, category, seller attributes) triple onto a
concrete FeeSchedule: effective commission rate, growth-service rate and
cap, transaction-fee rate, VAT rate, duty-rate range, fixed fees, and the
order-processing-fee waiver decision. It is pure lookup and selection over
the static country table; no iteration, no I/O, no shared mutable state.

Selection policy:

  - Commission: a seller tier other than the country default uses the
    country's tier-specific band when one exists; otherwise the category
    band, falling back to the country's "other" band. Bands resolve to
    their arithmetic midpoint.
  - Growth-service fee: category rate with the same "other" fallback,
    capped per order where the country publishes a cap.
  - Order-processing fee: waived inside the new-seller grace window, or
    while the seller's order count this billing period is within the
    country's free-order allowance.

Errors:

  - ErrUnknownCountry: country code absent from the reference table
  - ErrInvalidCategory: category outside the enumerated set
*/
package schedule
