package domain

import "testing"

func TestMonthlyProfit(t *testing.T) {
	p := &Property{MonthlyRent: 950, MonthlyMortgage: 600, Status: StatusRented}
	if got := p.MonthlyProfit(); got != 350 {
		t.Fatalf("expected profit 350, got %v", got)
	}
}

func TestMonthlyProfit_VacantIsZero(t *testing.T) {
	p := &Property{MonthlyRent: 950, MonthlyMortgage: 600, Status: StatusVacant}
	if got := p.MonthlyProfit(); got != 0 {
		t.Fatalf("expected zero profit while vacant, got %v", got)
	}
}
