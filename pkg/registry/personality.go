// pkg/registry/personality.go
package registry

const CategoryPersonality = "personality"

// PersonalityActivities describes the task types served by the worker
// manager. Input schemas are filled in by the caller.
func PersonalityActivities() []Activity {
	return []Activity{
		{
			ID:           "analyze-personality-text",
			DisplayName:  "Analyze Personality Text",
			Description:  "Scores free text on the Big Five and assigns an archetype and avatar",
			TaskType:     "analyze-personality-text",
			OutputFields: []string{"personality_scores", "explanation", "avatar_data", "analysis_mode", "text_length", "cached"},
			ErrorCodes:   []string{"INPUT_VALIDATION_FAILED", "PARSE_ERROR", "TIMEOUT_ERROR"},
			Timeout:      "10s",
			Retries:      3,
			Tags:         []string{"bigfive", "text"},
		},
		{
			ID:           "analyze-quest-responses",
			DisplayName:  "Analyze Quest Responses",
			Description:  "Scores the four quest answers as one document",
			TaskType:     "analyze-quest-responses",
			OutputFields: []string{"analysis", "user_name", "response_count"},
			ErrorCodes:   []string{"INPUT_VALIDATION_FAILED", "PARSE_ERROR", "INSUFFICIENT_INPUT"},
			Timeout:      "10s",
			Retries:      3,
			Tags:         []string{"bigfive", "quest"},
		},
		{
			ID:           "generate-avatar",
			DisplayName:  "Generate Avatar",
			Description:  "Builds an avatar profile from Big Five scores",
			TaskType:     "generate-avatar",
			OutputFields: []string{"avatar"},
			ErrorCodes:   []string{"INPUT_VALIDATION_FAILED", "PARSE_ERROR"},
			Timeout:      "5s",
			Retries:      3,
			Tags:         []string{"avatar"},
		},
		{
			ID:           "match-character",
			DisplayName:  "Match Character",
			Description:  "Finds the catalog character closest to a personality vector",
			TaskType:     "match-character",
			OutputFields: []string{"match", "personality_vector", "source"},
			ErrorCodes:   []string{"INPUT_VALIDATION_FAILED", "PARSE_ERROR"},
			Timeout:      "5s",
			Retries:      3,
			Tags:         []string{"characters", "similarity"},
		},
		{
			ID:           "map-ui-traits",
			DisplayName:  "Map UI Traits",
			Description:  "Converts selected UI traits into Big Five scores",
			TaskType:     "map-ui-traits",
			OutputFields: []string{"personality_scores", "unknown_traits"},
			ErrorCodes:   []string{"INPUT_VALIDATION_FAILED", "PARSE_ERROR"},
			Timeout:      "5s",
			Retries:      3,
			Tags:         []string{"bigfive", "ui"},
		},
		{
			ID:           "character-chat",
			DisplayName:  "Character Chat",
			Description:  "Replies in the voice of a persona through the generation service",
			TaskType:     "character-chat",
			OutputFields: []string{"message", "character_name", "timestamp", "status", "error"},
			ErrorCodes:   []string{"INPUT_VALIDATION_FAILED", "PARSE_ERROR"},
			Timeout:      "30s",
			Retries:      1,
			Tags:         []string{"chat", "genai"},
		},
	}
}
