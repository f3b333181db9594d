package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxMessageLength is the longest activity message accepted, in characters.
const MaxMessageLength = 280

// Validation codes returned to the client in the "errors" list.
const (
	ErrCodeTTLBlank              = "ttl_blank"
	ErrCodeUserHandleBlank       = "user_handle_blank"
	ErrCodeMessageBlank          = "message_blank"
	ErrCodeMessageExceedMaxChars = "message_exceed_max_chars"
	ErrCodeUnexpected            = "unexpected_error"
)

// TTL is the lifetime code a client picks for a new activity.
type TTL string

// Supported lifetimes.
const (
	TTL30Days  TTL = "30-days"
	TTL7Days   TTL = "7-days"
	TTL3Days   TTL = "3-days"
	TTL1Day    TTL = "1-day"
	TTL12Hours TTL = "12-hours"
	TTL3Hours  TTL = "3-hours"
	TTL1Hour   TTL = "1-hour"
)

var ttlDurations = map[TTL]time.Duration{
	TTL30Days:  30 * 24 * time.Hour,
	TTL7Days:   7 * 24 * time.Hour,
	TTL3Days:   3 * 24 * time.Hour,
	TTL1Day:    24 * time.Hour,
	TTL12Hours: 12 * time.Hour,
	TTL3Hours:  3 * time.Hour,
	TTL1Hour:   time.Hour,
}

// ParseTTL maps a lifetime code to its duration.
func ParseTTL(code string) (time.Duration, bool) {
	d, ok := ttlDurations[TTL(code)]
	return d, ok
}

// NewActivity is a request to publish a message.
type NewActivity struct {
	Handle  string
	Message string
	TTL     string
}

// Validate returns the validation code for the request, or nil when it is
// acceptable. Only one code is ever reported: checks run in order (ttl,
// handle, message) and a later failure replaces an earlier one.
func (a NewActivity) Validate() []string {
	var code string

	if _, ok := ParseTTL(a.TTL); !ok {
		code = ErrCodeTTLBlank
	}

	if a.Handle == "" {
		code = ErrCodeUserHandleBlank
	}

	if a.Message == "" {
		code = ErrCodeMessageBlank
	} else if utf8.RuneCountInString(a.Message) > MaxMessageLength {
		code = ErrCodeMessageExceedMaxChars
	}

	if code == "" {
		return nil
	}
	return []string{code}
}

// ExpiresAt returns when an activity created at now should expire.
func (a NewActivity) ExpiresAt(now time.Time) (time.Time, error) {
	d, ok := ParseTTL(a.TTL)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unknown ttl %q", ErrValidation, a.TTL)
	}
	return now.Add(d), nil
}

// Activity is a published message as served in feeds.
type Activity struct {
	UUID                uuid.UUID  `json:"uuid"`
	ReplyToActivityUUID *uuid.UUID `json:"reply_to_activity_uuid,omitempty"`
	Handle              string     `json:"handle"`
	Message             string     `json:"message"`
	LikesCount          int        `json:"likes_count"`
	RepliesCount        int        `json:"replies_count"`
	RepostsCount        int        `json:"reposts_count"`
	CreatedAt           time.Time  `json:"created_at"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	Replies             []Activity `json:"replies,omitempty"`
}
