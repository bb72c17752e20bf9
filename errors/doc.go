/*
Package errors implements custom error interfaces for the marketplace
ledger.

The idea is to reuse as many errors from this package as possible and
define custom package errors only when absolutely necessary. Errors are
matched by their root cause: every runtime error must wrap one of the
registered root errors, and tests and clients use (*Error).Is or Code to
categorize a failure without string comparison.
*/
package errors
