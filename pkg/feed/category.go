package feed

import "strings"

// Category is a coarse classification tag attached to feed cards for
// counting and filtering. The zero value is the invalid sentinel: callers
// must treat it as a hard error and never forward it to the platform.
type Category int

const (
	CategoryInvalid Category = iota
	CategoryAdvertising
	CategoryAnnouncements
	CategoryNews
	CategorySocial
	CategoryNoCategory
	CategoryAll
)

var categoryTokens = map[string]Category{
	"advertising":   CategoryAdvertising,
	"announcements": CategoryAnnouncements,
	"news":          CategoryNews,
	"social":        CategorySocial,
	"no_category":   CategoryNoCategory,
	"all":           CategoryAll,
}

// ResolveCategory maps a free-form token to its canonical category.
// Matching is case-insensitive and exact; anything unrecognized resolves
// to CategoryInvalid.
func ResolveCategory(token string) Category {
	return categoryTokens[strings.ToLower(token)]
}

func (c Category) String() string {
	switch c {
	case CategoryAdvertising:
		return "advertising"
	case CategoryAnnouncements:
		return "announcements"
	case CategoryNews:
		return "news"
	case CategorySocial:
		return "social"
	case CategoryNoCategory:
		return "no_category"
	case CategoryAll:
		return "all"
	default:
		return "invalid"
	}
}
