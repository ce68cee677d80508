package bridge

import (
	"context"
	"fmt"

	"github.com/tinywideclouds/go-engage-bridge/pkg/feed"
)

const errFeedRetrievalFailed = "feed cards retrieval failed"

// GetFeedCards requests a feed sync and reports the mapped card list once
// the platform signals completion. Each call registers its own waiter with
// the correlator, so concurrent calls queue: the next completion signal
// resolves all of them, and none can fire twice.
func (b *Bridge) GetFeedCards(ctx context.Context, cb Callback) {
	id, outcome := b.correlator.Await()

	if err := b.collab.RequestRefresh(ctx); err != nil {
		b.correlator.Cancel(id)
		b.report(cb, "GetFeedCards", err.Error(), nil)
		return
	}

	go func() {
		select {
		case <-ctx.Done():
			b.correlator.Cancel(id)
			b.report(cb, "GetFeedCards", ctx.Err().Error(), nil)
		case o, ok := <-outcome:
			if !ok || !o.Succeeded {
				b.report(cb, "GetFeedCards", errFeedRetrievalFailed, nil)
				return
			}
			cards, err := b.collab.Cards(ctx)
			if err != nil {
				b.report(cb, "GetFeedCards", errFeedRetrievalFailed, nil)
				return
			}
			b.report(cb, "GetFeedCards", "", feed.MapCards(cards))
		}
	}()
}

// RequestFeedRefresh asks the platform for a feed sync without waiting for
// the result.
func (b *Bridge) RequestFeedRefresh(ctx context.Context) {
	if err := b.collab.RequestRefresh(ctx); err != nil {
		b.logger.Error("Feed refresh request failed", "err", err)
	}
}

// CardCount reports the number of cards in the given category. An invalid
// category token is rejected locally.
func (b *Bridge) CardCount(ctx context.Context, category string, cb Callback) {
	cat := feed.ResolveCategory(category)
	if cat == feed.CategoryInvalid {
		b.report(cb, "CardCount",
			fmt.Sprintf("Invalid card category %s, cannot retrieve card count.", category), nil)
		return
	}
	n, err := b.collab.CardCount(ctx, cat)
	if err != nil {
		b.report(cb, "CardCount", err.Error(), nil)
		return
	}
	b.report(cb, "CardCount", "", n)
}

// UnreadCardCount reports the number of unread cards in the given category.
func (b *Bridge) UnreadCardCount(ctx context.Context, category string, cb Callback) {
	cat := feed.ResolveCategory(category)
	if cat == feed.CategoryInvalid {
		b.report(cb, "UnreadCardCount",
			fmt.Sprintf("Invalid card category %s, cannot retrieve unread card count.", category), nil)
		return
	}
	n, err := b.collab.UnreadCardCount(ctx, cat)
	if err != nil {
		b.report(cb, "UnreadCardCount", err.Error(), nil)
		return
	}
	b.report(cb, "UnreadCardCount", "", n)
}

// LogCardImpression records an impression for the first card in the
// current feed whose id matches. An unknown id is a silent no-op.
func (b *Bridge) LogCardImpression(ctx context.Context, cardID string) {
	b.logCardEvent(ctx, cardID, "impression", b.collab.LogCardImpression)
}

// LogCardClick records a click for the first card in the current feed
// whose id matches. An unknown id is a silent no-op.
func (b *Bridge) LogCardClick(ctx context.Context, cardID string) {
	b.logCardEvent(ctx, cardID, "click", b.collab.LogCardClick)
}

func (b *Bridge) logCardEvent(ctx context.Context, cardID, kind string, log func(context.Context, feed.Card) error) {
	cards, err := b.collab.Cards(ctx)
	if err != nil {
		b.logger.Error("Card lookup failed", "kind", kind, "card_id", cardID, "err", err)
		return
	}
	for _, c := range cards {
		if feed.CardID(c) != cardID {
			continue
		}
		if err := log(ctx, c); err != nil {
			b.logger.Error("Card event logging failed", "kind", kind, "card_id", cardID, "err", err)
		}
		return
	}
	// The feed may have refreshed since the application captured the id;
	// an unmatched id is not an error.
}

// LaunchFeed asks the platform to present its feed UI.
func (b *Bridge) LaunchFeed(ctx context.Context, opts feed.DisplayOptions) {
	if err := b.collab.LaunchFeed(ctx, opts); err != nil {
		b.logger.Error("Feed launch failed", "err", err)
	}
}
