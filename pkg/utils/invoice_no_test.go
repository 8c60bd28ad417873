package utils

import "testing"

func TestGenerateInvoiceNo(t *testing.T) {
	tests := []struct {
		prefix string
		number int64
		want   string
	}{
		{"INV", 1, "INV-000001"},
		{"spa", 42, "SPA-000042"},
		{"", 1234567, "INV-1234567"},
	}
	for _, tt := range tests {
		if got := GenerateInvoiceNo(tt.prefix, tt.number); got != tt.want {
			t.Errorf("GenerateInvoiceNo(%q, %d) = %q, want %q", tt.prefix, tt.number, got, tt.want)
		}
	}
}
