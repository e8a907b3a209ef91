// internal/personality/analyzer/analyzer.go
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"personality-workers/internal/common/logger"
	"personality-workers/internal/personality/avatar"
	"personality-workers/internal/personality/bigfive"
	"personality-workers/internal/personality/characters"
	"personality-workers/internal/personality/features"
	"personality-workers/internal/personality/interpret"
	"personality-workers/internal/personality/scoring"
	"personality-workers/internal/personality/uitraits"
)

const (
	// QuestResponseCount is the number of quest prompts.
	QuestResponseCount = 4
	// contextWindow bounds how many prior messages are folded into the text.
	contextWindow = 5

	StatusComplete = "complete"
	StatusFailed   = "failed"

	DefaultUserName = "User"

	MessageInsufficientText = "Insufficient text for analysis"
)

var (
	ErrQuestIncomplete = errors.New("quest analysis requires all 4 responses")
	ErrNoScorer        = errors.New("scorer is required")
)

// AnalysisModes lists the modes the feature extractor understands.
var AnalysisModes = []string{features.ModeGeneral, features.ModeQuest, features.ModeConversation, features.ModeJobDesc}

// Message is one prior conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TextAnalysis is the result of AnalyzeText.
type TextAnalysis struct {
	AnalysisID        string                   `json:"analysisId"`
	PersonalityScores interpret.Interpretation `json:"personality_scores"`
	Explanation       string                   `json:"explanation"`
	AvatarData        *avatar.Profile          `json:"avatar_data"`
	AnalysisMode      string                   `json:"analysis_mode"`
	TextLength        int                      `json:"text_length"`
	Vector            bigfive.Vector           `json:"vector"`
	// Degraded is set when the minimal analysis was returned.
	Degraded bool `json:"degraded"`
}

// QuestAnalysis is the result of AnalyzeQuestResponses.
type QuestAnalysis struct {
	AnalysisID          string                   `json:"analysisId,omitempty"`
	PersonalityAnalysis interpret.Interpretation `json:"personality_analysis,omitempty"`
	AvatarData          *avatar.Profile          `json:"avatar_data,omitempty"`
	Explanation         string                   `json:"explanation,omitempty"`
	QuestInsights       *QuestInsights           `json:"quest_insights,omitempty"`
	UserName            string                   `json:"user_name"`
	CompletionStatus    string                   `json:"completion_status"`
	Error               string                   `json:"error,omitempty"`
}

// UserContext personalizes avatar generation.
type UserContext struct {
	UserName string `json:"user_name,omitempty"`
}

type ModelInfo struct {
	ModelName       string   `json:"model_name"`
	ModelPath       string   `json:"model_path"`
	SupportedTraits []string `json:"supported_traits"`
	AnalysisModes   []string `json:"analysis_modes"`
}

// Analyzer runs the full pipeline. It is safe for concurrent use: the scorer
// and the catalog are read-only after construction.
type Analyzer struct {
	scorer      scoring.Scorer
	catalog     *characters.Catalog
	interpreter *interpret.Interpreter
	logger      logger.Logger
	now         func() time.Time
}

func New(scorer scoring.Scorer, catalog *characters.Catalog, log logger.Logger) (*Analyzer, error) {
	if scorer == nil {
		return nil, ErrNoScorer
	}
	if catalog == nil || catalog.Len() == 0 {
		return nil, characters.ErrCatalogEmpty
	}
	return &Analyzer{
		scorer:      scorer,
		catalog:     catalog,
		interpreter: interpret.NewInterpreter(log),
		logger:      log,
		now:         time.Now,
	}, nil
}

func (a *Analyzer) Catalog() *characters.Catalog {
	return a.catalog
}

// AnalyzeText scores text in the given mode. Up to five prior message
// contents are prepended before scoring. Empty input and scorer failures
// yield the minimal analysis.
func (a *Analyzer) AnalyzeText(ctx context.Context, text, mode string, prior []Message) *TextAnalysis {
	if mode == "" {
		mode = features.ModeGeneral
	}
	a.logger.Info("analyzing text", map[string]interface{}{
		"mode":       mode,
		"textLength": utf8.RuneCountInString(text),
		"context":    len(prior),
	})

	res := features.Extract(text, mode)
	if res.ProcessedText == "" {
		a.logger.Warn("empty text after preprocessing", map[string]interface{}{"mode": mode})
		return a.minimal(MessageInsufficientText, text, mode)
	}

	if len(prior) > 0 {
		res = features.Extract(withContext(prior, text), mode)
	}

	scores, err := a.scorer.Score(ctx, res.Features, res.ProcessedText)
	if err != nil {
		a.logger.Error("scoring failed", map[string]interface{}{
			"scorer": a.scorer.Name(),
			"error":  err.Error(),
		})
		return a.minimal(fmt.Sprintf("Analysis error: %v", err), text, mode)
	}

	interp := a.interpreter.InterpretVector(scores)
	return &TextAnalysis{
		AnalysisID:        uuid.NewString(),
		PersonalityScores: interp,
		Explanation:       interpret.Explain(interp, res.Features, mode),
		AvatarData:        avatar.Synthesize(scores, avatar.DefaultName),
		AnalysisMode:      mode,
		TextLength:        utf8.RuneCountInString(text),
		Vector:            scores,
	}
}

func withContext(prior []Message, text string) string {
	if len(prior) > contextWindow {
		prior = prior[len(prior)-contextWindow:]
	}
	parts := make([]string, 0, len(prior))
	for _, m := range prior {
		parts = append(parts, m.Content)
	}
	return strings.Join(parts, " ") + " " + text
}

func (a *Analyzer) minimal(message, text, mode string) *TextAnalysis {
	return &TextAnalysis{
		AnalysisID:        uuid.NewString(),
		PersonalityScores: interpret.Minimal(),
		Explanation:       message,
		AvatarData:        avatar.Default(),
		AnalysisMode:      mode,
		TextLength:        utf8.RuneCountInString(text),
		Vector:            bigfive.Neutral(),
		Degraded:          true,
	}
}

// AnalyzeQuestResponses analyzes the four quest answers as one quest-mode
// text and attaches per-prompt insights.
func (a *Analyzer) AnalyzeQuestResponses(ctx context.Context, responses []string, userName string) *QuestAnalysis {
	if userName == "" {
		userName = DefaultUserName
	}
	a.logger.Info("analyzing quest responses", map[string]interface{}{
		"userName":  userName,
		"responses": len(responses),
	})

	if len(responses) < QuestResponseCount {
		a.logger.Warn("quest analysis failed", map[string]interface{}{
			"userName": userName,
			"error":    ErrQuestIncomplete.Error(),
		})
		return &QuestAnalysis{
			UserName:         userName,
			CompletionStatus: StatusFailed,
			Error:            ErrQuestIncomplete.Error(),
		}
	}

	ta := a.AnalyzeText(ctx, strings.Join(responses, " "), features.ModeQuest, nil)
	insights := ReadQuestInsights(responses)

	return &QuestAnalysis{
		AnalysisID:          ta.AnalysisID,
		PersonalityAnalysis: ta.PersonalityScores,
		AvatarData:          ta.AvatarData.WithQuestContext(userName, responses),
		Explanation:         ta.Explanation,
		QuestInsights:       &insights,
		UserName:            userName,
		CompletionStatus:    StatusComplete,
	}
}

// GenerateAvatarFromScores builds an avatar from named scores. Missing
// dimensions read as 0.5; an empty mapping gives the default avatar.
func (a *Analyzer) GenerateAvatarFromScores(scores map[string]float64, uc UserContext) *avatar.Profile {
	stamp := a.now().UTC().Format(time.RFC3339)
	if len(scores) == 0 {
		return avatar.Default().WithGeneration("direct_scores", stamp)
	}

	v, unknown := bigfive.FromMap(scores)
	for _, name := range unknown {
		a.logger.Warn("unknown trait skipped", map[string]interface{}{"trait": name})
	}

	name := uc.UserName
	if name == "" {
		name = avatar.DefaultName
	}
	return avatar.Synthesize(v, name).WithGeneration("direct_scores", stamp)
}

func (a *Analyzer) MatchCharacter(v bigfive.Vector) characters.MatchResult {
	return a.catalog.Match(v.Clamped())
}

func (a *Analyzer) MapUITraits(selected map[string]bool) bigfive.Vector {
	return uitraits.Map(selected)
}

func (a *Analyzer) ModelInfo() ModelInfo {
	info := ModelInfo{
		ModelName:     a.scorer.Name(),
		AnalysisModes: append([]string(nil), AnalysisModes...),
	}
	if p, ok := a.scorer.(interface{ Path() string }); ok {
		info.ModelPath = p.Path()
	}
	for _, t := range bigfive.Traits {
		info.SupportedTraits = append(info.SupportedTraits, string(t))
	}
	return info
}
