package marketplace

// snapshotRequest pages through the seller catalog with a cursor.
type snapshotRequest struct {
	LastID string `json:"last_id"`
	Limit  int    `json:"limit"`
}

type snapshotItem struct {
	OfferID string `json:"offer_id"`
	Stock   string `json:"stock"`
	Price   string `json:"price"`
}

type snapshotResponse struct {
	Result struct {
		Items  []snapshotItem `json:"items"`
		LastID string         `json:"last_id"`
		Total  int            `json:"total"`
	} `json:"result"`
}

// stockEntry and priceEntry are the bulk-import payload items. Quantities
// and prices ride as the seller API expects them.
type stockEntry struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
}

type stocksRequest struct {
	Stocks []stockEntry `json:"stocks"`
}

type priceEntry struct {
	OfferID string `json:"offer_id"`
	Price   string `json:"price"`
}

type pricesRequest struct {
	Prices []priceEntry `json:"prices"`
}

// importResult is the per-item verdict shared by the stock and price
// import endpoints.
type importResult struct {
	Result []importResultItem `json:"result"`
}

type importResultItem struct {
	OfferID string        `json:"offer_id"`
	Updated bool          `json:"updated"`
	Errors  []importError `json:"errors"`
}

type importError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// createRequest onboards one new listing.
type createRequest struct {
	Items []createItem `json:"items"`
}

type createItem struct {
	OfferID string `json:"offer_id"`
	Stock   int    `json:"stock"`
	Price   string `json:"price"`
}
