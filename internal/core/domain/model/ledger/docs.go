// Package ledger holds the append-only money history entry. Balances live on
// the user aggregate; every balance mutation is paired with an entry here so
// the history always explains the current numbers.
package ledger
