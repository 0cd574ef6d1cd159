// Package models defines the core domain models for the spaceops
// scheduler service.
//
// # Models
//
//   - Space: one guesthouse/shared-space tenant
//   - SettlementSchedule: per-space auto-close configuration
//   - EmailSettings: per-space expense-reminder recipients
//   - Settlement: one settlement period's record, keyed by period ID
//   - Expense: a shared expense awaiting approval
//   - JobRun: persisted audit record of one scheduler invocation
//
// # Design Principles
//
//  1. Spaces, schedules and expenses are written by the (external)
//     management application; this service reads them and only ever
//     writes the settlement close transition and job-run records.
//  2. Amounts are integral KRW, stored as int64. There are no
//     fractional amounts in this domain.
//  3. Configuration records are validated once at the storage
//     boundary (SettlementSchedule.Validate), so downstream schedule
//     logic never deals with half-formed settings.
package models
