// Package snapshot holds the last synced feed per user: the server-side
// analog of the mobile SDK's on-device feed cache. The snapshot is
// internal to the platform client; the bridge itself owns no feed state.
package snapshot

import (
	"context"
	"time"

	"github.com/tinywideclouds/go-engage-bridge/pkg/feed"
)

// Card variant tags as they appear on the vendor wire.
const (
	TypeCaptionedImage   = "captioned_image"
	TypeClassic          = "classic"
	TypeTextAnnouncement = "text_announcement"
	TypeBanner           = "banner"
)

// Card is the stored wire shape of a feed card. Type tags the variant;
// cards with unrecognized tags survive storage and are dropped when
// converted for mapping.
type Card struct {
	Type        string            `json:"type"`
	ID          string            `json:"id"`
	Image       string            `json:"image,omitempty"`
	AspectRatio float64           `json:"aspect_ratio,omitempty"`
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	URL         *string           `json:"url,omitempty"`
	Extras      map[string]string `json:"extras,omitempty"`
	Created     int64             `json:"created"`
	Updated     int64             `json:"updated"`
	Viewed      bool              `json:"viewed"`
	Categories  []string          `json:"categories,omitempty"`
}

// ToFeed converts the stored card into its typed variant. The second
// return reports whether the type tag is one of the four known shapes.
func (c Card) ToFeed() (feed.Card, bool) {
	created := time.Unix(c.Created, 0).UTC()
	updated := time.Unix(c.Updated, 0).UTC()

	switch c.Type {
	case TypeCaptionedImage:
		return feed.CaptionedImageCard{
			ID:          c.ID,
			Image:       c.Image,
			AspectRatio: c.AspectRatio,
			Title:       c.Title,
			Description: c.Description,
			URL:         c.URL,
			Extras:      c.Extras,
			Created:     created,
			Updated:     updated,
		}, true
	case TypeClassic:
		return feed.ClassicCard{
			ID:          c.ID,
			Image:       c.Image,
			Title:       c.Title,
			Description: c.Description,
			URL:         c.URL,
			Extras:      c.Extras,
			Created:     created,
			Updated:     updated,
		}, true
	case TypeTextAnnouncement:
		return feed.TextAnnouncementCard{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			URL:         c.URL,
			Extras:      c.Extras,
			Created:     created,
			Updated:     updated,
		}, true
	case TypeBanner:
		return feed.BannerCard{
			ID:      c.ID,
			Image:   c.Image,
			URL:     c.URL,
			Extras:  c.Extras,
			Created: created,
			Updated: updated,
		}, true
	default:
		return nil, false
	}
}

// Store keeps one feed snapshot per user. Load returns an empty snapshot,
// not an error, for a user who has never synced.
type Store interface {
	Save(ctx context.Context, userID string, cards []Card) error
	Load(ctx context.Context, userID string) ([]Card, error)
}
