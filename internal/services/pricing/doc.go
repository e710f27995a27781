/*
Package pricing solves retail prices against a resolved fee schedule.

Given a cost base and a target profit rate, Solve finds the consumer-facing
price P at which the merchant's net revenue, after commission, growth-service
fee, transaction fee, sales VAT, fixed fees, import duty and import VAT,
equals costBase x (1 + targetProfitRate).

The fee system is linear in P except where the growth-service fee saturates
at its per-order cap, so the relationship between P and net revenue is
piecewise-linear with at most one kink. Solve seeds with the closed form of
the uncapped system and corrects with at most a handful of regime-aware
Newton steps; each step lands on the active regime's root, so convergence
takes at most three passes for any non-degenerate schedule.

Solve is a pure function of its inputs. Every call resolves independently
with no shared state, so calls may run concurrently without coordination.

EvaluateAt answers the inverse question: the full breakdown and realized
profit at a caller-chosen price.
*/
package pricing
