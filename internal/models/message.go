// Package models contains the core data structures for analyzeme.
package models

import (
	"time"
	"unicode/utf8"
)

// SenderType identifies who posted a message.
type SenderType string

const (
	SenderUser    SenderType = "user"
	SenderSystem  SenderType = "system"
	SenderBot     SenderType = "bot"
	SenderService SenderType = "service"
)

// Message represents a single record of a conversation export.
// Absent or null fields decode to their zero value.
type Message struct {
	// ID is the export's message identifier.
	ID string `json:"id,omitempty"`

	// Name is the sender's display name.
	Name string `json:"name"`

	// UserID identifies the sender independent of display name changes.
	UserID string `json:"user_id,omitempty"`

	// SenderType is "user", "system", "bot" or "service".
	SenderType SenderType `json:"sender_type,omitempty"`

	// System is set for messages generated by the chat service itself.
	System bool `json:"system,omitempty"`

	// CreatedAt is the send time in epoch seconds.
	CreatedAt int64 `json:"created_at"`

	// Text is the message body. Null and absent both decode to "".
	Text string `json:"text"`

	// FavoritedBy holds the IDs of the users who liked the message.
	FavoritedBy []string `json:"favorited_by"`

	// Attachments are images, locations, mentions and the like.
	Attachments []Attachment `json:"attachments"`
}

// Attachment describes one attachment of a message. Only the count is
// aggregated; the descriptor is kept for exports.
type Attachment struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

// Time returns the send time in loc. A nil loc means time.Local.
func (m *Message) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(m.CreatedAt, 0).In(loc)
}

// Liked reports whether anyone favorited the message.
func (m *Message) Liked() bool {
	return len(m.FavoritedBy) > 0
}

// Likes returns the number of users who favorited the message.
func (m *Message) Likes() int {
	return len(m.FavoritedBy)
}

// Length returns the text length in characters.
func (m *Message) Length() int {
	return utf8.RuneCountInString(m.Text)
}
