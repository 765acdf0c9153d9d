package models

// CartLine is one pending purchase entry, keyed by product id in the session
// cart. Only the name is snapshotted at add time; prices are always re-read
// from the product so a line never goes stale.
type CartLine struct {
	ProductName string
	Qty         int
}

// Cart is the session-held cart state: product id → line. It is never
// persisted as an entity; it lives in the cookie session and is passed
// explicitly through cart and checkout operations.
type Cart map[string]CartLine
