package lifecycle

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/kmaina/stockroom-api/pkg/apperror"
)

// DuplicateProduct describes a product that appears on more than one line of
// the same order. Indexes are zero-based positions in the submitted item list.
type DuplicateProduct struct {
	ProductTypeID uuid.UUID `json:"product_type_id"`
	ProductName   string    `json:"product_name"`
	ExistingIndex int       `json:"existing_index"`
	NewIndex      int       `json:"new_index"`
}

// LineRef is the minimal view of a line item the duplicate guard needs.
type LineRef struct {
	ProductTypeID uuid.UUID
	ProductName   string
}

// FindDuplicate scans the lines in order and returns the first product that
// occurs twice, or nil when every line references a distinct product.
func FindDuplicate(lines []LineRef) *DuplicateProduct {
	seen := make(map[uuid.UUID]int, len(lines))
	for i, line := range lines {
		if first, ok := seen[line.ProductTypeID]; ok {
			return &DuplicateProduct{
				ProductTypeID: line.ProductTypeID,
				ProductName:   line.ProductName,
				ExistingIndex: first,
				NewIndex:      i,
			}
		}
		seen[line.ProductTypeID] = i
	}
	return nil
}

// CheckLines returns a conflict error when a product appears on more than one
// line, carrying the conflicting indexes so clients can highlight both rows.
func CheckLines(lines []LineRef) error {
	dup := FindDuplicate(lines)
	if dup == nil {
		return nil
	}
	return apperror.NewConflictErrorWithFields(
		"product "+dup.ProductName+" already exists on this order",
		[]apperror.FieldError{
			{Field: "items", Message: "duplicate product " + dup.ProductName},
			{Field: "existing_index", Message: strconv.Itoa(dup.ExistingIndex)},
			{Field: "new_index", Message: strconv.Itoa(dup.NewIndex)},
		},
	)
}
