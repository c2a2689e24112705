package hypixel

// BazaarData is the body of /skyblock/bazaar.
type BazaarData struct {
	Success bool `json:"success"`
	// LastUpdated is a Unix timestamp in milliseconds.
	LastUpdated int64              `json:"lastUpdated"`
	Products    map[string]Product `json:"products"`
}

// Product is one tradeable bazaar item.
type Product struct {
	// ProductID is the canonical id, e.g. INK_SACK:3 or JERRY_BOX_GREEN.
	ProductID string `json:"product_id"`
	// SellSummary holds the top sell-side orders (what players pay to buy instantly).
	SellSummary []Summary `json:"sell_summary"`
	// BuySummary holds the top buy-side orders.
	BuySummary  []Summary   `json:"buy_summary"`
	QuickStatus QuickStatus `json:"quick_status"`
}

// Summary is one aggregated order-book price level.
type Summary struct {
	Amount       float64 `json:"amount"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Orders       int     `json:"orders"`
}

// QuickStatus is the summary view shown in-game.
type QuickStatus struct {
	ProductID      string  `json:"productId"`
	SellPrice      float64 `json:"sellPrice"`
	SellVolume     float64 `json:"sellVolume"`
	SellMovingWeek float64 `json:"sellMovingWeek"`
	SellOrders     float64 `json:"sellOrders"`
	BuyPrice       float64 `json:"buyPrice"`
	BuyVolume      float64 `json:"buyVolume"`
	BuyMovingWeek  float64 `json:"buyMovingWeek"`
	BuyOrders      float64 `json:"buyOrders"`
}
