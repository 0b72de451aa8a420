package models

// DefaultFixedPrice is the per-customer monthly charge applied when no
// settings document exists yet.
const DefaultFixedPrice = 1000

// Settings is the singleton billing configuration record. It lives at a
// fixed, well-known document key so concurrent read-or-create writers cannot
// mint duplicates.
type Settings struct {
	FixedPrice         float64 `json:"fixedPrice" firestore:"fixedPrice"`
	AutoBillGeneration bool    `json:"autoBillGeneration" firestore:"autoBillGeneration"`
}

// DefaultSettings returns the settings applied before an administrator has
// saved any.
func DefaultSettings() *Settings {
	return &Settings{
		FixedPrice:         DefaultFixedPrice,
		AutoBillGeneration: false,
	}
}
