package errors

import (
	"sync"
	"time"
)

// MaxMessages bounds the messages a TUIHandler keeps.
const MaxMessages = 50

// MessageType is the severity of a status message.
type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeInfo:
		return "info"
	case MessageTypeSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Message is one status line entry.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

// Expired reports whether the message is older than ttl at now.
func (m Message) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(m.Timestamp) >= ttl
}

// TUIHandler keeps messages for the status line of the TUI.
type TUIHandler struct {
	mu        sync.RWMutex
	messages  []Message
	onMessage func(msg Message)
	now       func() time.Time
}

var _ ErrorHandler = (*TUIHandler)(nil)

// NewTUIHandler returns a handler calling onMessage for every new message.
// onMessage may be nil.
func NewTUIHandler(onMessage func(msg Message)) *TUIHandler {
	return &TUIHandler{onMessage: onMessage, now: time.Now}
}

func (h *TUIHandler) Error(msg string)   { h.add(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.add(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.add(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.add(msg, MessageTypeSuccess) }

func (h *TUIHandler) add(text string, t MessageType) {
	h.mu.Lock()
	msg := Message{Text: text, Type: t, Timestamp: h.now()}
	h.messages = append(h.messages, msg)
	if len(h.messages) > MaxMessages {
		h.messages = h.messages[len(h.messages)-MaxMessages:]
	}
	cb := h.onMessage
	h.mu.Unlock()

	if cb != nil {
		cb(msg)
	}
}

// Latest returns the most recent message unless it is older than ttl. A
// zero ttl never expires.
func (h *TUIHandler) Latest(ttl time.Duration) (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	msg := h.messages[len(h.messages)-1]
	if ttl > 0 && msg.Expired(h.now(), ttl) {
		return Message{}, false
	}
	return msg, true
}

// All returns a copy of the kept messages, oldest first.
func (h *TUIHandler) All() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Clear drops every message.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}
