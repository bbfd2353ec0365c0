package cart

// DiscountTier is a volume discount band keyed by the total quantity of books
// across the cart.
type DiscountTier struct {
	MinQuantity int
	Percent     int
	Severity    Severity
	// Template gets the saved amount substituted in when Percent > 0; the
	// zero tier carries a fixed message.
	Template string
}

// Bands in descending threshold order; lookup takes the first match.
var discountTiers = []DiscountTier{
	{MinQuantity: 20, Percent: 20, Severity: SeverityGold, Template: "Incredible! You saved S/. %s"},
	{MinQuantity: 10, Percent: 15, Severity: SeverityAccent, Template: "Excellent! You saved S/. %s"},
	{MinQuantity: 5, Percent: 10, Severity: SeveritySuccess, Template: "Great! You saved S/. %s"},
	{MinQuantity: 0, Percent: 0, Severity: SeverityNeutral, Template: "No discount applied"},
}

// TierFor returns the discount band for a total book quantity.
func TierFor(totalQuantity int) DiscountTier {
	for _, t := range discountTiers {
		if totalQuantity >= t.MinQuantity {
			return t
		}
	}
	return discountTiers[len(discountTiers)-1]
}
