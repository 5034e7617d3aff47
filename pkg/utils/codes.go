package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GeneratePurchaseCode generates a unique purchase order code
func GeneratePurchaseCode() string {
	return "PO-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateSaleCode generates a unique sales order code
func GenerateSaleCode() string {
	return "SO-" + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateProductCode generates a unique product type code
func GenerateProductCode() string {
	return "PRD-" + strings.ToUpper(uuid.New().String()[:8])
}
