// Package billing provides the domain model for monthly rental bills.
//
// This package is responsible for:
//   - Versioned unit prices (PriceConfig), append-only, latest effective_from wins
//   - Turning rent, meter deltas and unit prices into bill charges
//   - The payment state of a bill (unpaid / paid with time, method and remark)
//
// Key Aggregates:
//   - Bill: one per (room, period); charges are derived and recomputed on every
//     generation, payment fields are only changed through payment updates
//   - PriceConfig: an immutable snapshot of four unit prices
//
// The billing domain reads rooms and meter readings from the rental domain.
package billing
