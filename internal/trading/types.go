package trading

// TokenInfo is the normalized token record returned by the read operations.
// Note is set on placeholder records produced when the metadata provider is
// unavailable.
type TokenInfo struct {
	Address   string  `json:"address"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Decimals  int     `json:"decimals"`
	PriceUSD  float64 `json:"priceUsd,omitempty"`
	MarketCap float64 `json:"marketCap,omitempty"`
	Image     string  `json:"image,omitempty"`
	Note      string  `json:"note,omitempty"`
}

// PriceInfo is the result of a price lookup.
type PriceInfo struct {
	Address     string  `json:"address"`
	USDPrice    float64 `json:"usdPrice"`
	NativePrice string  `json:"nativePrice,omitempty"`
	Exchange    string  `json:"exchange,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// StageToken is one entry of a lifecycle-stage listing.
type StageToken struct {
	Address              string `json:"address"`
	Name                 string `json:"name"`
	Symbol               string `json:"symbol"`
	Logo                 string `json:"logo,omitempty"`
	PriceUSD             string `json:"priceUsd,omitempty"`
	Liquidity            string `json:"liquidity,omitempty"`
	FullyDilutedValue    string `json:"fullyDilutedValuation,omitempty"`
	BondingCurveProgress string `json:"bondingCurveProgress,omitempty"`
	GraduatedAt          string `json:"graduatedAt,omitempty"`
}

// StagePage is one page of a lifecycle-stage listing.
type StagePage struct {
	Stage  string       `json:"stage"`
	Cursor string       `json:"cursor,omitempty"`
	Tokens []StageToken `json:"tokens"`
	Note   string       `json:"note,omitempty"`
}

// TxResult reports a submitted buy or sell. Status is always "sent" on
// success: submission is fire-and-forget, there is no confirmation tracking.
type TxResult struct {
	Success     bool    `json:"success"`
	Signature   string  `json:"signature"`
	Mint        string  `json:"tokenAddress"`
	Amount      string  `json:"amount"`
	AmountSol   float64 `json:"amountSol,omitempty"`
	Status      string  `json:"status"`
	ExplorerURL string  `json:"explorerUrl"`
}

// TradeOpts are the optional trade parameters with their defaults.
type TradeOpts struct {
	SlippagePct float64
	PriorityFee float64
	Pool        string
}

// DefaultTradeOpts returns the standard trade parameters.
func DefaultTradeOpts() TradeOpts {
	return TradeOpts{SlippagePct: 1.0, PriorityFee: 0.00001, Pool: "pump"}
}
