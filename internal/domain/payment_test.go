package domain

import (
	"testing"
	"time"
)

func TestIsLate(t *testing.T) {
	onTime := &RentPayment{PaymentDate: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC)}
	if onTime.IsLate() {
		t.Fatalf("payment on the 5th must not be late")
	}

	late := &RentPayment{PaymentDate: time.Date(2026, 8, 6, 0, 0, 0, 0, time.UTC)}
	if !late.IsLate() {
		t.Fatalf("payment on the 6th must be late")
	}
}
