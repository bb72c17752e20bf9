/*
Package market implements the listing and purchase engine of the
marketplace.

A listing escrows a quantity of one skin kind in the custody wallet and
offers it for a fixed coin price. A purchase settles atomically: escrow to
the buyer, payment to the seller, listing closed. Listing ids come from a
monotonic sequence and are never reused; closed listings stay readable
forever. The custody invariant holds at all times: the custody wallet
contains exactly the escrowed tokens of all active listings.
*/
package market
