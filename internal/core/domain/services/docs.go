// Package services contains stateless domain services spanning more than one
// aggregate: money movement with paired ledger entries, reputation rules,
// rating math and courier-to-order matching.
package services
