// Package courier holds the courier profile aggregate: transport, the
// internal reputation score and counters, and the personal order search
// radius.
package courier
