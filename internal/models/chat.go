package models

import "time"

// Participant is a user as referenced by the messaging API.
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar,omitempty"`
	Role      Role   `json:"role"`
}

// Message is the backend message DTO: a one-to-one message between a
// student and a mentor. SentAt is frequently absent in backend data, so
// it is a pointer and all ordering logic must tolerate nil.
type Message struct {
	ID        string      `json:"id"`
	Sender    Participant `json:"sender"`
	Recipient Participant `json:"recipient"`
	Content   string      `json:"content"`
	SentAt    *time.Time  `json:"sentAt,omitempty"`
}

// Counterpart summarizes one chat thread from the current user's point of
// view. Derived from message history on every load, never persisted.
type Counterpart struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	AvatarURL       string     `json:"avatar,omitempty"`
	LastMessage     string     `json:"lastMessage,omitempty"`
	LastMessageTime *time.Time `json:"lastMessageTime,omitempty"`
	Unread          bool       `json:"unread"`
}

// ChatMessage is the render model for one entry in the open conversation.
// Own messages carry the "You" label instead of the sender's name.
type ChatMessage struct {
	ID        string `json:"id"`
	UserName  string `json:"user"`
	AvatarURL string `json:"avatar,omitempty"`
	Content   string `json:"content"`
	Pending   bool   `json:"pending,omitempty"`
}

// OwnMessageLabel is how the current user's messages are labeled in a
// conversation.
const OwnMessageLabel = "You"

// SendMessageRequest is the payload for sending a message. Name and
// avatar are carried so a first message can label the promoted thread
// without another roster round-trip.
type SendMessageRequest struct {
	RecipientID     string `json:"recipientId" binding:"required"`
	RecipientName   string `json:"recipientName,omitempty"`
	RecipientAvatar string `json:"recipientAvatar,omitempty"`
	Content         string `json:"content" binding:"required"`
}

// CounterpartLists is the messaging landing payload for either role:
// threads with history plus roster entries with no chat yet.
type CounterpartLists struct {
	WithChats []Counterpart `json:"withChats"`
	Available []Participant `json:"available"`
}

// ConversationResponse is the open chat panel payload.
type ConversationResponse struct {
	CounterpartID string        `json:"counterpartId"`
	Messages      []ChatMessage `json:"messages"`
}
