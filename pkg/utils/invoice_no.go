package utils

import (
	"fmt"
	"strings"
)

// GenerateInvoiceNo formats a sequential invoice number for display, e.g. INV-000042
func GenerateInvoiceNo(prefix string, number int64) string {
	if prefix == "" {
		prefix = "INV"
	}
	return fmt.Sprintf("%s-%06d", strings.ToUpper(prefix), number)
}
