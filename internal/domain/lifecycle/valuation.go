package lifecycle

// LineValuation is the derived money breakdown for a single line item.
// All amounts are in cents.
type LineValuation struct {
	Subtotal int64
	Tax      int64
	Total    int64
}

// PurchaseLine values a purchase line item. taxPerUnit is the tax charged on
// one unit, so the line tax scales with quantity.
func PurchaseLine(quantity int, unitPrice, taxPerUnit int64) LineValuation {
	qty := int64(quantity)
	subtotal := unitPrice * qty
	tax := taxPerUnit * qty
	return LineValuation{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// SalesLine values a sales line item. Sales lines carry no tax.
func SalesLine(quantity int, unitPrice int64) LineValuation {
	qty := int64(quantity)
	subtotal := unitPrice * qty
	return LineValuation{
		Subtotal: subtotal,
		Total:    subtotal,
	}
}

// OrderTotal sums line totals into the order total.
func OrderTotal(lines []LineValuation) int64 {
	var total int64
	for _, l := range lines {
		total += l.Total
	}
	return total
}
