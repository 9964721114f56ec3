// Package order holds the delivery order aggregate: the status machine from
// creation through the waiting pool, courier progress steps and confirmation
// to completion, plus items, escrow amounts, timer deadlines and the
// optimistic concurrency version.
package order
