package analysis

import (
	domainPrice "github.com/muhammadchandra19/stock-sentinel/internal/domain/price"
	quotev1 "github.com/muhammadchandra19/stock-sentinel/internal/domain/quote/v1"
)

// MaxProfileBins bounds the resolution a caller may ask of VolumeProfile.
const MaxProfileBins = 100

// StockInfo is the company profile together with the price it trades at
// now. Quote is nil when no price could be served.
type StockInfo struct {
	*quotev1.Overview
	Quote *domainPrice.ServedQuote `json:"quote,omitempty"`
}
