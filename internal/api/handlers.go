// internal/api/handlers.go
package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"personality-workers/internal/common/errors"
	"personality-workers/internal/common/metrics"
	"personality-workers/internal/personality/analyzer"
	"personality-workers/internal/personality/bigfive"
	"personality-workers/internal/personality/characters"
	"personality-workers/internal/personality/chat"
	"personality-workers/internal/personality/features"

	"github.com/gin-gonic/gin"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

type analyzeRequest struct {
	Text    *string            `json:"text"`
	Mode    string             `json:"mode"`
	Context []analyzer.Message `json:"context"`
}

type questRequest struct {
	Responses []string `json:"responses"`
	UserName  string   `json:"user_name"`
}

type avatarRequest struct {
	PersonalityScores map[string]float64   `json:"personality_scores"`
	UserContext       analyzer.UserContext `json:"user_context"`
}

type matchRequest struct {
	PersonalityScores map[string]float64 `json:"personality_scores"`
	SelectedTraits    map[string]bool    `json:"selected_traits"`
}

type chatRequest struct {
	Message             string                `json:"message"`
	CharacterName       string                `json:"character_name"`
	CharacterContext    chat.CharacterContext `json:"character_context"`
	ConversationHistory []chat.Message        `json:"conversation_history"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message, "status": statusError})
}

// bind decodes the JSON body into out. It writes the error response itself
// and returns the raw body for schema checks.
func bind(c *gin.Context, out interface{}) ([]byte, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Request body could not be read")
		return nil, false
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, out); err != nil {
		respondError(c, http.StatusBadRequest, "Request body must be a JSON object")
		return nil, false
	}
	return body, true
}

// check validates body against schema and writes a 400 on failure.
func (s *Server) check(c *gin.Context, schema string, body []byte) bool {
	if err := s.validator.ValidateJSON(schema, string(body)); err != nil {
		respondError(c, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// decode is bind followed by check.
func (s *Server) decode(c *gin.Context, schema string, out interface{}) bool {
	body, ok := bind(c, out)
	return ok && s.check(c, schema, body)
}

func validationMessage(err error) string {
	stdErr := errors.AsStandardError(err)
	if stdErr.Details != "" {
		return "Invalid request: " + stdErr.Details
	}
	return stdErr.Message
}

func (s *Server) Health(c *gin.Context) {
	status := "ready"
	if s.analyzer == nil {
		status = "failed"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":          "healthy",
		"service":         ServiceName,
		"analyzer_status": status,
	})
}

func (s *Server) Analyze(c *gin.Context) {
	var req analyzeRequest
	body, ok := bind(c, &req)
	if !ok {
		return
	}
	if req.Text == nil {
		respondError(c, http.StatusBadRequest, "Missing 'text' field in request")
		return
	}
	if strings.TrimSpace(*req.Text) == "" {
		respondError(c, http.StatusBadRequest, "Text input cannot be empty")
		return
	}
	if !s.check(c, "analyze-personality-text", body) {
		return
	}
	if req.Mode == "" {
		req.Mode = features.ModeGeneral
	}

	start := time.Now()
	result := s.analyzer.AnalyzeText(c.Request.Context(), *req.Text, req.Mode, req.Context)
	s.obs.RecordAnalysis(c.Request.Context(), "text", req.Mode, result.Degraded, time.Since(start))
	if result.Degraded {
		metrics.DegradedAnalyses.WithLabelValues(req.Mode).Inc()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             statusSuccess,
		"analysisId":         result.AnalysisID,
		"personality_scores": result.PersonalityScores,
		"explanation":        result.Explanation,
		"avatar_data":        result.AvatarData,
		"analysis_mode":      result.AnalysisMode,
		"text_length":        result.TextLength,
	})
}

func (s *Server) Quest(c *gin.Context) {
	var req questRequest
	body, ok := bind(c, &req)
	if !ok {
		return
	}
	if req.Responses == nil {
		respondError(c, http.StatusBadRequest, "Missing 'responses' field in request")
		return
	}
	if !s.check(c, "analyze-quest-responses", body) {
		return
	}
	if len(req.Responses) < analyzer.QuestResponseCount {
		respondError(c, http.StatusBadRequest, "Quest mode requires all 4 responses")
		return
	}

	start := time.Now()
	result := s.analyzer.AnalyzeQuestResponses(c.Request.Context(), req.Responses, req.UserName)
	s.obs.RecordAnalysis(c.Request.Context(), "quest", features.ModeQuest,
		result.CompletionStatus != analyzer.StatusComplete, time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"status":         statusSuccess,
		"analysis":       result,
		"user_name":      result.UserName,
		"response_count": len(req.Responses),
	})
}

func (s *Server) GenerateAvatar(c *gin.Context) {
	var req avatarRequest
	if !s.decode(c, "generate-avatar", &req) {
		return
	}
	profile := s.analyzer.GenerateAvatarFromScores(req.PersonalityScores, req.UserContext)
	metrics.ArchetypesAssigned.WithLabelValues(profile.Archetype.Name).Inc()

	c.JSON(http.StatusOK, gin.H{
		"status": statusSuccess,
		"avatar": profile,
	})
}

func (s *Server) MatchCharacter(c *gin.Context) {
	var req matchRequest
	if !s.decode(c, "match-character", &req) {
		return
	}

	var v bigfive.Vector
	if req.PersonalityScores != nil {
		var unknown []string
		v, unknown = bigfive.FromMap(req.PersonalityScores)
		for _, name := range unknown {
			s.logger.Warn("unknown trait skipped", map[string]interface{}{"trait": name})
		}
	} else {
		v = s.analyzer.MapUITraits(req.SelectedTraits)
	}
	match := s.analyzer.MatchCharacter(v)
	metrics.CharactersMatched.WithLabelValues(match.CharacterName, match.Confidence).Inc()

	c.JSON(http.StatusOK, gin.H{
		"status":             statusSuccess,
		"match":              match,
		"personality_vector": v,
	})
}

func (s *Server) MapTraits(c *gin.Context) {
	var req matchRequest
	if !s.decode(c, "map-ui-traits", &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             statusSuccess,
		"personality_scores": s.analyzer.MapUITraits(req.SelectedTraits),
	})
}

// Characters lists the catalog, optionally filtered by ?keyword=.
func (s *Server) Characters(c *gin.Context) {
	catalog := s.analyzer.Catalog()
	entries := catalog.Entries()
	if kw := c.Query("keyword"); kw != "" {
		entries = catalog.ByKeyword(kw)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     statusSuccess,
		"characters": entries,
		"count":      len(entries),
	})
}

func (s *Server) Character(c *gin.Context) {
	profile, err := s.analyzer.Catalog().Get(c.Param("name"))
	if err != nil {
		if stderrors.Is(err, characters.ErrCharacterNotFound) {
			respondError(c, http.StatusNotFound, "Character not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "character": profile})
}

func (s *Server) ModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusSuccess, "model": s.analyzer.ModelInfo()})
}

func (s *Server) Chat(c *gin.Context) {
	var req chatRequest
	if !s.decode(c, "character-chat", &req) {
		return
	}
	reply := s.chat.Reply(c.Request.Context(), chat.Turn{
		Message:       req.Message,
		CharacterName: req.CharacterName,
		Context:       req.CharacterContext,
		History:       req.ConversationHistory,
	})
	metrics.ChatReplies.WithLabelValues(reply.CharacterName, reply.Status).Inc()
	c.JSON(http.StatusOK, reply)
}
