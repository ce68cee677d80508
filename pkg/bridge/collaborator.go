package bridge

import (
	"context"
	"strings"
	"time"

	"github.com/tinywideclouds/go-engage-bridge/pkg/feed"
)

// ProfileField names the standard profile attributes the platform accepts
// one at a time.
type ProfileField string

const (
	FieldFirstName   ProfileField = "first_name"
	FieldLastName    ProfileField = "last_name"
	FieldEmail       ProfileField = "email"
	FieldCountry     ProfileField = "country"
	FieldHomeCity    ProfileField = "home_city"
	FieldPhoneNumber ProfileField = "phone"
	FieldAvatarURL   ProfileField = "avatar_image_url"
)

// Gender is the platform's coarse gender tag.
type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
)

// Channel is a messaging channel carrying an opt-in state.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// SubscriptionState is a user's opt-in state for a messaging channel.
// The zero value is the invalid sentinel and must never reach the platform.
type SubscriptionState int

const (
	SubscriptionInvalid SubscriptionState = iota
	Subscribed
	Unsubscribed
	OptedIn
)

// ResolveSubscriptionState maps a free-form token to its canonical state,
// case-insensitively. Unrecognized tokens resolve to SubscriptionInvalid.
func ResolveSubscriptionState(token string) SubscriptionState {
	switch strings.ToLower(token) {
	case "subscribed":
		return Subscribed
	case "unsubscribed":
		return Unsubscribed
	case "opted_in", "optedin":
		return OptedIn
	default:
		return SubscriptionInvalid
	}
}

func (s SubscriptionState) String() string {
	switch s {
	case Subscribed:
		return "subscribed"
	case Unsubscribed:
		return "unsubscribed"
	case OptedIn:
		return "opted_in"
	default:
		return "invalid"
	}
}

// TwitterProfile mirrors the third-party Twitter profile fields the
// platform accepts.
type TwitterProfile struct {
	ID              int64  `json:"id"`
	ScreenName      string `json:"screen_name"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	FollowersCount  int    `json:"followers_count"`
	FriendsCount    int    `json:"friends_count"`
	StatusesCount   int    `json:"statuses_count"`
	ProfileImageURL string `json:"profile_image_url"`
}

// FacebookProfile mirrors the third-party Facebook profile fields the
// platform accepts.
type FacebookProfile struct {
	ID              string   `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	City            string   `json:"city"`
	Gender          string   `json:"gender"`
	Birthday        string   `json:"birthday"`
	NumberOfFriends int      `json:"num_friends"`
	Likes           []string `json:"likes"`
}

// Purchase is a logged product purchase. Price stays a string on this
// surface; the platform parses and validates the amount.
type Purchase struct {
	ProductID  string         `json:"product_id"`
	Price      string         `json:"price"`
	Currency   string         `json:"currency"`
	Quantity   int            `json:"quantity"`
	Properties map[string]any `json:"properties,omitempty"`
}

// UserProfile is the platform surface for identity and standard profile
// fields.
type UserProfile interface {
	Identify(ctx context.Context, userID string) error
	SetField(ctx context.Context, field ProfileField, value string) error
	SetDateOfBirth(ctx context.Context, year int, month time.Month, day int) error
	SetGender(ctx context.Context, g Gender) error
	SetSubscriptionState(ctx context.Context, ch Channel, s SubscriptionState) error
	SetTwitterData(ctx context.Context, p TwitterProfile) error
	SetFacebookData(ctx context.Context, p FacebookProfile) error
}

// CustomAttributes is the platform surface for free-form user attributes.
type CustomAttributes interface {
	SetAttribute(ctx context.Context, key string, value any) error
	UnsetAttribute(ctx context.Context, key string) error
	IncrementAttribute(ctx context.Context, key string, by int) error
	AddToAttributeArray(ctx context.Context, key, value string) error
	RemoveFromAttributeArray(ctx context.Context, key, value string) error
}

// EventSink is the platform surface for analytics events.
type EventSink interface {
	LogCustomEvent(ctx context.Context, name string, properties map[string]any) error
	LogPurchase(ctx context.Context, p Purchase) error
	SubmitFeedback(ctx context.Context, email, message string, isBug bool) error
	RequestImmediateFlush(ctx context.Context) error
}

// PushRegistrar is the platform surface for push token registration.
type PushRegistrar interface {
	RegisterPushToken(ctx context.Context, token string) error
}

// FeedController is the platform surface for the content feed. Updates
// carries the asynchronous feed-sync completion signal; implementations
// emit exactly one Update per RequestRefresh call.
type FeedController interface {
	RequestRefresh(ctx context.Context) error
	Cards(ctx context.Context) ([]feed.Card, error)
	CardCount(ctx context.Context, category feed.Category) (int, error)
	UnreadCardCount(ctx context.Context, category feed.Category) (int, error)
	LogCardImpression(ctx context.Context, card feed.Card) error
	LogCardClick(ctx context.Context, card feed.Card) error
	LaunchFeed(ctx context.Context, opts feed.DisplayOptions) error
	Updates() <-chan feed.Update
}

// Collaborator is the full public surface of the wrapped engagement
// platform. It is injected into the bridge at construction so tests can
// substitute a fake; nothing in this module reaches it through a global.
type Collaborator interface {
	UserProfile
	CustomAttributes
	EventSink
	PushRegistrar
	FeedController
}
