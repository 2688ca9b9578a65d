package models

// Balance holds the two independent, non-fungible coin pools the platform
// tracks per user: coins usable to send recognition vs. coins usable to
// redeem prizes. The BFF never computes these values; it only relays the
// server-reported numbers and invalidates its cache after any mutation that
// could have changed them.
type Balance struct {
	ComplimentBalance int64 `json:"compliment_balance"`
	RedeemableBalance int64 `json:"redeemable_balance"`
}
