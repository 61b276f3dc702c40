package pkg

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateSessionID returns a fresh id for sessions started outside a chat.
func GenerateSessionID() string {
	return uuid.NewString()
}

// ChatSessionID keys a session by chat and user, one game per user in each chat.
func ChatSessionID(chatID, userID int64) string {
	return fmt.Sprintf("tg:%d:%d", chatID, userID)
}
