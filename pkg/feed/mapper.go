package feed

// Record is the plain field mapping of a single card, keyed the way
// application code expects to read it.
type Record map[string]any

// MapCards converts a one-time snapshot of cards into plain records.
// Input order is preserved, unrecognized variants are dropped silently,
// and an absent URL maps to the empty string, never nil. Timestamps map
// to Unix seconds.
func MapCards(cards []Card) []Record {
	records := make([]Record, 0, len(cards))
	for _, c := range cards {
		switch v := c.(type) {
		case CaptionedImageCard:
			records = append(records, Record{
				"image":       v.Image,
				"aspectRatio": v.AspectRatio,
				"title":       v.Title,
				"description": v.Description,
				"url":         urlOrEmpty(v.URL),
				"extras":      v.Extras,
				"id":          v.ID,
				"created":     v.Created.Unix(),
				"updated":     v.Updated.Unix(),
			})
		case ClassicCard:
			records = append(records, Record{
				"image":       v.Image,
				"title":       v.Title,
				"description": v.Description,
				"url":         urlOrEmpty(v.URL),
				"extras":      v.Extras,
				"id":          v.ID,
				"created":     v.Created.Unix(),
				"updated":     v.Updated.Unix(),
			})
		case TextAnnouncementCard:
			records = append(records, Record{
				"title":       v.Title,
				"description": v.Description,
				"url":         urlOrEmpty(v.URL),
				"extras":      v.Extras,
				"id":          v.ID,
				"created":     v.Created.Unix(),
				"updated":     v.Updated.Unix(),
			})
		case BannerCard:
			records = append(records, Record{
				"image":   v.Image,
				"url":     urlOrEmpty(v.URL),
				"extras":  v.Extras,
				"id":      v.ID,
				"created": v.Created.Unix(),
				"updated": v.Updated.Unix(),
			})
		}
	}
	return records
}

func urlOrEmpty(u *string) string {
	if u == nil {
		return ""
	}
	return *u
}
