// Package feed contains the domain model for the platform's content feed:
// the closed set of card variants, card categories, and the mapping of
// cards into the plain records handed to application code.
package feed

import "time"

// Card is one unit of feed content. The variant set is sealed: exactly the
// four shapes below satisfy it, so a type switch over Card with a default
// branch covers every card the platform can deliver.
type Card interface {
	isCard()
}

// CaptionedImageCard is an image card with a title and caption.
type CaptionedImageCard struct {
	ID          string
	Image       string
	AspectRatio float64
	Title       string
	Description string
	URL         *string
	Extras      map[string]string
	Created     time.Time
	Updated     time.Time
}

// ClassicCard is a small-image card with title and description.
type ClassicCard struct {
	ID          string
	Image       string
	Title       string
	Description string
	URL         *string
	Extras      map[string]string
	Created     time.Time
	Updated     time.Time
}

// TextAnnouncementCard is a text-only card.
type TextAnnouncementCard struct {
	ID          string
	Title       string
	Description string
	URL         *string
	Extras      map[string]string
	Created     time.Time
	Updated     time.Time
}

// BannerCard is a full-width image card with no text of its own.
type BannerCard struct {
	ID      string
	Image   string
	URL     *string
	Extras  map[string]string
	Created time.Time
	Updated time.Time
}

func (CaptionedImageCard) isCard()   {}
func (ClassicCard) isCard()          {}
func (TextAnnouncementCard) isCard() {}
func (BannerCard) isCard()           {}

// CardID returns the identity of a card, or "" for an unrecognized variant.
func CardID(c Card) string {
	switch v := c.(type) {
	case CaptionedImageCard:
		return v.ID
	case ClassicCard:
		return v.ID
	case TextAnnouncementCard:
		return v.ID
	case BannerCard:
		return v.ID
	default:
		return ""
	}
}

// Update is the platform's feed-sync completion signal. Exactly one Update
// is emitted per refresh request.
type Update struct {
	Succeeded bool
}

// DisplayOptions tunes the presented feed UI. Zero values leave the
// platform defaults in place.
type DisplayOptions struct {
	TopMargin   float64 `json:"top_margin,omitempty"`
	LeftMargin  float64 `json:"left_margin,omitempty"`
	RightMargin float64 `json:"right_margin,omitempty"`
	CardWidth   float64 `json:"card_width,omitempty"`
}
