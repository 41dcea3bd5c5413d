package format

import "testing"

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10.5, "£10.5m"},
		{0, "£0.0m"},
		{-1.2, "-£1.2m"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMoneyDelta(t *testing.T) {
	if got := MoneyDelta(0.5); got != "+£0.5m" {
		t.Errorf("MoneyDelta(0.5) = %q, want +£0.5m", got)
	}
	if got := MoneyDelta(-1.2); got != "-£1.2m" {
		t.Errorf("MoneyDelta(-1.2) = %q, want -£1.2m", got)
	}
}

func TestPointsDelta(t *testing.T) {
	if got := PointsDelta(3.25); got != "+3.2" {
		t.Errorf("PointsDelta(3.25) = %q, want +3.2", got)
	}
	if got := PointsDelta(-0.7); got != "-0.7" {
		t.Errorf("PointsDelta(-0.7) = %q, want -0.7", got)
	}
}

func TestOwnership(t *testing.T) {
	if got := Ownership(45.12); got != "45.1%" {
		t.Errorf("Ownership(45.12) = %q, want 45.1%%", got)
	}
}
