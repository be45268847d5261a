package feeding

import (
	"testing"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

func TestParseFeedCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.FeedCategory
		ok       bool
	}{
		{"dry", domain.FeedDry, true},
		{"  DRY ", domain.FeedDry, true},
		{"freeze-dried", domain.FeedFreezeDried, true},
		{"frozen", domain.FeedFrozen, true},
		{"live", domain.FeedLive, true},
		{"fresh-vegetable", domain.FeedFreshVegetable, true},
		{"other", domain.FeedOther, true},
		{"kibble", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			category, ok := ParseFeedCategory(tt.input)
			if ok != tt.ok || category != tt.expected {
				t.Errorf("ParseFeedCategory(%q) = (%q, %v), expected (%q, %v)", tt.input, category, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestResolveFeedCategory(t *testing.T) {
	tests := []struct {
		name     string
		expected domain.FeedCategory
	}{
		// Freeze-dried names also contain "dried"; the more specific
		// token must win.
		{"Freeze-Dried Bloodworms", domain.FeedFreezeDried},
		{"freeze dried tubifex", domain.FeedFreezeDried},
		{"Frozen Brine Shrimp", domain.FeedFrozen},
		{"live blackworms", domain.FeedLive},
		{"Blanched Zucchini Slices", domain.FeedFreshVegetable},
		{"veggie rounds", domain.FeedFreshVegetable},
		{"TetraMin Tropical Flakes", domain.FeedDry},
		{"sinking shrimp pellets", domain.FeedDry},
		{"Algae Wafers", domain.FeedDry},
		{"dried gammarus", domain.FeedDry},
		{"mystery paste", domain.FeedOther},
		{"", domain.FeedOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if category := ResolveFeedCategory(tt.name); category != tt.expected {
				t.Errorf("ResolveFeedCategory(%q) = %q, expected %q", tt.name, category, tt.expected)
			}
		})
	}
}
