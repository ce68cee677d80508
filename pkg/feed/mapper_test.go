package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unknownCard stands in for a variant this package does not recognize.
type unknownCard struct{}

func (unknownCard) isCard() {}

func TestMapCards_OrderPreservedUnknownDropped(t *testing.T) {
	url := "https://example.com/promo"
	created := time.Unix(1700000000, 0).UTC()

	input := []Card{
		ClassicCard{ID: "1", Title: "First", URL: &url, Created: created, Updated: created},
		BannerCard{ID: "2", Image: "https://img/banner.png", Created: created, Updated: created},
		unknownCard{},
		TextAnnouncementCard{ID: "3", Title: "Third", Created: created, Updated: created},
	}

	records := MapCards(input)

	require.Len(t, records, 3)
	assert.Equal(t, "1", records[0]["id"])
	assert.Equal(t, "2", records[1]["id"])
	assert.Equal(t, "3", records[2]["id"])
}

func TestMapCards_AbsentURLDefaultsToEmptyString(t *testing.T) {
	input := []Card{
		CaptionedImageCard{ID: "ci"},
		ClassicCard{ID: "cl"},
		TextAnnouncementCard{ID: "ta"},
		BannerCard{ID: "ba"},
	}

	records := MapCards(input)
	require.Len(t, records, 4)
	for _, r := range records {
		url, ok := r["url"]
		require.True(t, ok, "card %v must carry a url key", r["id"])
		assert.Equal(t, "", url, "card %v url must be the empty string, not nil", r["id"])
	}
}

func TestMapCards_FieldSetsPerVariant(t *testing.T) {
	url := "https://example.com/x"
	extras := map[string]string{"k": "v"}
	created := time.Unix(1700000000, 0).UTC()
	updated := time.Unix(1700000100, 0).UTC()

	t.Run("CaptionedImage", func(t *testing.T) {
		records := MapCards([]Card{CaptionedImageCard{
			ID: "a", Image: "img", AspectRatio: 1.5, Title: "t", Description: "d",
			URL: &url, Extras: extras, Created: created, Updated: updated,
		}})
		require.Len(t, records, 1)
		assert.Equal(t, Record{
			"image": "img", "aspectRatio": 1.5, "title": "t", "description": "d",
			"url": url, "extras": extras, "id": "a",
			"created": created.Unix(), "updated": updated.Unix(),
		}, records[0])
	})

	t.Run("Banner carries no title or description", func(t *testing.T) {
		records := MapCards([]Card{BannerCard{
			ID: "b", Image: "img", URL: &url, Extras: extras, Created: created, Updated: updated,
		}})
		require.Len(t, records, 1)
		assert.NotContains(t, records[0], "title")
		assert.NotContains(t, records[0], "description")
		assert.Equal(t, url, records[0]["url"])
	})

	t.Run("TextAnnouncement carries no image", func(t *testing.T) {
		records := MapCards([]Card{TextAnnouncementCard{
			ID: "c", Title: "t", Description: "d", Created: created, Updated: updated,
		}})
		require.Len(t, records, 1)
		assert.NotContains(t, records[0], "image")
	})
}

func TestCardID(t *testing.T) {
	assert.Equal(t, "x", CardID(ClassicCard{ID: "x"}))
	assert.Equal(t, "y", CardID(BannerCard{ID: "y"}))
	assert.Equal(t, "", CardID(unknownCard{}))
}
