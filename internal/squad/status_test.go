package squad

import "testing"

func TestParseAvailability(t *testing.T) {
	tests := []struct {
		code    string
		want    Availability
		wantErr bool
	}{
		{code: "a", want: Available},
		{code: "d", want: Doubtful},
		{code: "i", want: Injured},
		{code: "u", want: Unavailable},
		{code: "s", want: Suspended},
		{code: "n", want: NotInSquad},
		{code: "x", wantErr: true},
		{code: "", wantErr: true},
		{code: "available", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ParseAvailability(tt.code)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseAvailability(%q) expected error, got %v", tt.code, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAvailability(%q) unexpected error: %v", tt.code, err)
			}
			if got != tt.want {
				t.Errorf("ParseAvailability(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestBuyEligible(t *testing.T) {
	eligible := map[Availability]bool{
		Available:   true,
		Doubtful:    true,
		Injured:     false,
		Unavailable: false,
		Suspended:   false,
		NotInSquad:  false,
	}
	for status, want := range eligible {
		if got := status.BuyEligible(); got != want {
			t.Errorf("%s.BuyEligible() = %v, want %v", status.Label(), got, want)
		}
	}
}

func TestStatusRoundTrip(t *testing.T) {
	for _, status := range []Availability{Available, Doubtful, Injured, Unavailable, Suspended, NotInSquad} {
		parsed, err := ParseAvailability(status.String())
		if err != nil {
			t.Fatalf("ParseAvailability(%q): %v", status.String(), err)
		}
		if parsed != status {
			t.Errorf("round trip of %s yielded %s", status.Label(), parsed.Label())
		}
	}
}
