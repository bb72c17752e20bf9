/*
Package skinmarket defines the interfaces that tie the marketplace ledger
together: messages and transactions, handlers that process them, the
key-value store they mutate, and the addresses and conditions used to
identify accounts.

The packages under x/ implement the ledger semantics (token registry, role
guard, payment ledger, marketplace engine). The app package provides the
router, the decorator chain and the transaction executor that serializes
all state changes. Everything in this root package is interface definitions
and small value types; implementations live in the subpackages.
*/
package skinmarket
