// internal/workers/personality/character-chat/models.go
package characterchat

import "personality-workers/internal/personality/chat"

type Input struct {
	Message             string                `json:"message"`
	CharacterName       string                `json:"character_name,omitempty"`
	CharacterContext    chat.CharacterContext `json:"character_context"`
	ConversationHistory []chat.Message        `json:"conversation_history,omitempty"`
}

type Output = chat.Reply
