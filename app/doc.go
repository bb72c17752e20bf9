/*
Package app assembles the pieces into a runnable ledger: a Router
dispatching messages to the extension handlers, a decorator chain
providing panic recovery and all-or-nothing delivery, and a TxExecutor
serializing every mutating operation behind one mutex.
*/
package app
