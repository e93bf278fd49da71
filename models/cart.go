package models

// CartLine is one product entry in a cart. ProductID is the dedup key: a cart
// never holds two lines for the same product. Price and the display metadata
// are snapshots taken when the line was first added.
type CartLine struct {
	ProductID int     `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Thumbnail string  `json:"thumbnail"`
	Quantity  int     `json:"quantity"`
}

// CartSnapshot is the persisted form of a cart. Only the lines are stored;
// totals are recomputed on load so a stale persisted aggregate can never
// leak back in.
type CartSnapshot struct {
	Lines []CartLine `json:"lines"`
}
