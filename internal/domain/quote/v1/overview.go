package quotev1

// Overview is the company profile and valuation snapshot of a symbol.
// Nil fields were not reported by the provider.
type Overview struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Sector        string   `json:"sector"`
	Industry      string   `json:"industry"`
	MarketCap     *int64   `json:"marketCap"`
	PERatio       *float64 `json:"peRatio"`
	ForwardPE     *float64 `json:"forwardPe"`
	DividendYield *float64 `json:"dividendYield"`
	Beta          *float64 `json:"beta"`
	High52Week    *float64 `json:"high52Week"`
	Low52Week     *float64 `json:"low52Week"`
}
