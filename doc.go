// Package foliosync reconciles freshly imported financial activities against
// previously recorded ones, and adjusts the imported figures so that they can
// be pushed to a portfolio tracking target.
//
// The core functionalities include:
//   - Data Model: currencies, money and quantities backed by exact decimal
//     arithmetic, symbol profiles with market data and stock split records,
//     and a closed set of activity kinds grouped into transient holdings.
//   - Reconciliation: a diff of an existing holding set against a newly
//     imported one, producing one merge order (new, updated, removed or
//     duplicate) per activity. Re-running the same import yields only
//     duplicates, so imports are idempotent.
//   - Adjustment: a fixed, priority-ordered pipeline of strategies that turn
//     raw imported quantities and prices into adjusted values reflecting
//     stock splits, staking reward bookkeeping, dust correction and
//     precision rounding. Every mutation is recorded in an append-only
//     trace per activity.
//   - Exchange Rates: money comparison across currencies through a pluggable
//     rate service; implementations live in the rates subpackage.
//
// Parsers that produce typed activities, the persistence layer, and the
// remote sync client are external collaborators: this package never touches
// raw broker files and holds no state between runs.
//
// This package serves as the foundational logic for the `fsync` command-line
// tool.
package foliosync
