//go:build property
// +build property

// Property-based tests for the cart store invariants.
package cart_test

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"github.com/libromundo/bookcart/internal/cart"
)

// TestAddItem_IDsStrictlyIncrease verifies id allocation over arbitrary valid
// add sequences: ids start at 1, strictly increase, and count the successful
// adds.
func TestAddItem_IDsStrictlyIncrease(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("ids are 1..n in insertion order", prop.ForAll(
		func(priceCents []int, quantities []int) bool {
			s := cart.NewStore()
			n := len(priceCents)
			if len(quantities) < n {
				n = len(quantities)
			}
			for i := 0; i < n; i++ {
				s.SetTitleDraft(fmt.Sprintf("book-%d", i))
				s.SetPriceDraft(fmt.Sprintf("%d.%02d", priceCents[i]/100, priceCents[i]%100))
				s.SetQuantityDraft(fmt.Sprintf("%d", quantities[i]))
				s.SetCategoryDraft(cart.CategoryFiction)
				s.AddItem()
			}
			items := s.Snapshot().Items
			if len(items) != n {
				return false
			}
			for i, it := range items {
				if it.ID != i+1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(1, 99999)),
		gen.SliceOf(gen.IntRange(1, 50)),
	))

	properties.TestingRun(t)
}

// TestCalculateTotal_Arithmetic verifies the recomputation identities for any
// cart: subtotal is the sum of line subtotals, the discount matches the tier
// for the quantity sum, and finalTotal = subtotal − discount.
func TestCalculateTotal_Arithmetic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("totals satisfy the discount identities", prop.ForAll(
		func(priceCents []int, quantities []int) bool {
			s := cart.NewStore()
			n := len(priceCents)
			if len(quantities) < n {
				n = len(quantities)
			}
			if n == 0 {
				return true
			}

			wantSubtotal := decimal.Zero
			wantCount := 0
			for i := 0; i < n; i++ {
				price := decimal.New(int64(priceCents[i]), -2)
				s.SetTitleDraft(fmt.Sprintf("book-%d", i))
				s.SetPriceDraft(price.StringFixed(2))
				s.SetQuantityDraft(fmt.Sprintf("%d", quantities[i]))
				s.SetCategoryDraft(cart.CategoryScience)
				s.AddItem()
				wantSubtotal = wantSubtotal.Add(price.Mul(decimal.NewFromInt(int64(quantities[i]))))
				wantCount += quantities[i]
			}

			s.CalculateTotal()
			totals := s.Snapshot().Totals
			if !totals.SummaryReady || totals.TotalItemCount != wantCount {
				return false
			}
			if !totals.Subtotal.Equal(wantSubtotal) {
				return false
			}
			tier := cart.TierFor(wantCount)
			wantDiscount := wantSubtotal.Mul(decimal.NewFromInt(int64(tier.Percent))).Div(decimal.NewFromInt(100))
			return totals.DiscountPercent == tier.Percent &&
				totals.DiscountAmount.Equal(wantDiscount) &&
				totals.FinalTotal.Equal(wantSubtotal.Sub(wantDiscount))
		},
		gen.SliceOf(gen.IntRange(1, 99999)),
		gen.SliceOf(gen.IntRange(1, 50)),
	))

	properties.TestingRun(t)
}
