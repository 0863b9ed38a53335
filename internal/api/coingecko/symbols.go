package coingecko

import "strings"

// coinSymbols maps CoinGecko coin ids to display tickers. Ids not listed here
// fall back to the first three letters upper-cased.
var coinSymbols = map[string]string{
	"bitcoin":       "BTC",
	"ethereum":      "ETH",
	"binancecoin":   "BNB",
	"solana":        "SOL",
	"ripple":        "XRP",
	"cardano":       "ADA",
	"dogecoin":      "DOGE",
	"polkadot":      "DOT",
	"tron":          "TRX",
	"litecoin":      "LTC",
	"chainlink":     "LINK",
	"avalanche-2":   "AVAX",
	"matic-network": "MATIC",
	"tether":        "USDT",
	"usd-coin":      "USDC",
}

// SymbolFor returns the display ticker for a coin id.
func SymbolFor(id string) string {
	if sym, ok := coinSymbols[id]; ok {
		return sym
	}
	short := id
	if len(short) > 3 {
		short = short[:3]
	}
	return strings.ToUpper(short)
}
