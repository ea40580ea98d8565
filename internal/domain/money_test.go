package domain

import "testing"

func TestDollarsToCents(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		want    int64
		wantErr bool
	}{
		{"whole dollars", 150.0, 15000, false},
		{"two decimals", 99.99, 9999, false},
		{"one decimal", 1.1, 110, false},
		{"zero", 0, 0, false},
		{"representation artifact", 1.10, 110, false},
		{"three decimals", 1.234, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DollarsToCents(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v, got %d", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Fatalf("DollarsToCents(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestCentsToDollars(t *testing.T) {
	if got := CentsToDollars(15000); got != 150.0 {
		t.Fatalf("CentsToDollars(15000) = %v, want 150.0", got)
	}
	if got := CentsToDollars(1); got != 0.01 {
		t.Fatalf("CentsToDollars(1) = %v, want 0.01", got)
	}
}
