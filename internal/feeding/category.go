package feeding

import (
	"strings"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

// ParseFeedCategory maps an exact category tag to its value. Callers
// that already hold a normalized tag should use this instead of the
// name heuristics below.
func ParseFeedCategory(s string) (domain.FeedCategory, bool) {
	switch domain.FeedCategory(strings.ToLower(strings.TrimSpace(s))) {
	case domain.FeedDry:
		return domain.FeedDry, true
	case domain.FeedFreezeDried:
		return domain.FeedFreezeDried, true
	case domain.FeedFrozen:
		return domain.FeedFrozen, true
	case domain.FeedLive:
		return domain.FeedLive, true
	case domain.FeedFreshVegetable:
		return domain.FeedFreshVegetable, true
	case domain.FeedOther:
		return domain.FeedOther, true
	default:
		return "", false
	}
}

// categoryTokens classifies raw feed names. Scanned in order; the
// freeze-dried tokens must come before the dry ones since "freeze-dried
// bloodworms" also contains "dried".
var categoryTokens = []struct {
	token    string
	category domain.FeedCategory
}{
	{"freeze-dried", domain.FeedFreezeDried},
	{"freeze dried", domain.FeedFreezeDried},
	{"freezedried", domain.FeedFreezeDried},
	{"frozen", domain.FeedFrozen},
	{"live", domain.FeedLive},
	{"vegetable", domain.FeedFreshVegetable},
	{"veggie", domain.FeedFreshVegetable},
	{"zucchini", domain.FeedFreshVegetable},
	{"cucumber", domain.FeedFreshVegetable},
	{"spinach", domain.FeedFreshVegetable},
	{"lettuce", domain.FeedFreshVegetable},
	{"flake", domain.FeedDry},
	{"pellet", domain.FeedDry},
	{"granule", domain.FeedDry},
	{"wafer", domain.FeedDry},
	{"crisp", domain.FeedDry},
	{"stick", domain.FeedDry},
	{"powder", domain.FeedDry},
	{"dried", domain.FeedDry},
	{"dry", domain.FeedDry},
}

// ResolveFeedCategory classifies a raw feed name or label. An exact
// category tag wins; otherwise the name is scanned for known tokens.
// Names that resolve to nothing are FeedOther, which carries the most
// conservative shelf-life defaults.
func ResolveFeedCategory(name string) domain.FeedCategory {
	if category, ok := ParseFeedCategory(name); ok {
		return category
	}
	lowered := strings.ToLower(name)
	for _, t := range categoryTokens {
		if strings.Contains(lowered, t.token) {
			return t.category
		}
	}
	return domain.FeedOther
}
