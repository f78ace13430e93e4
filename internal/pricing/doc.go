// Package pricing turns tariff offers into display-ready pricing breakdowns.
//
// It is the view model behind the offer card: price formatting with a fixed
// placeholder for missing data, scheme-dispatched breakdown lines, provider
// grouping for the comparison picker, and two derived views (the Tempo price
// active at a given instant and a monthly cost simulation).
//
// Nothing in this package performs I/O or returns an error for bad price data;
// malformed or absent values degrade to the placeholder string.
package pricing
