package heatmap

import (
	"testing"

	"github.com/mrnkim/creator-discovery/internal/types"
)

func TestFilterEvents(t *testing.T) {
	events := []types.Event{
		{Brand: "Acme", StartSec: 0, EndSec: 5},
		{Brand: "Globex", StartSec: 10, EndSec: 11},
		{Brand: "Acme", StartSec: 50, EndSec: 80},
		{Brand: "Initech", StartSec: 90, EndSec: 90},
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"no constraints", Filter{}, 4},
		{"brand allow-list", Filter{Brands: []string{"acme"}}, 2},
		{"min duration", Filter{MinDurationSec: 2}, 2},
		{"window overlap", Filter{FromSec: 45, ToSec: 60}, 1},
		{"open-ended window", Filter{FromSec: 45}, 2},
		{"zero-length instant in window", Filter{FromSec: 85, ToSec: 95}, 1},
		{"combined", Filter{Brands: []string{"Acme"}, MinDurationSec: 10}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEvents(events, tt.filter)
			if len(got) != tt.want {
				t.Fatalf("kept %d events, want %d: %v", len(got), tt.want, got)
			}
		})
	}
}

func TestFilterEvents_PreservesOrder(t *testing.T) {
	events := []types.Event{
		{Brand: "Acme", StartSec: 50, EndSec: 60},
		{Brand: "Acme", StartSec: 0, EndSec: 10},
	}
	got := FilterEvents(events, Filter{Brands: []string{"Acme"}})
	if len(got) != 2 || got[0].StartSec != 50 {
		t.Fatalf("input order not preserved: %v", got)
	}
}
