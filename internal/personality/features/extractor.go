// internal/personality/features/extractor.go
package features

import (
	"strings"
)

var (
	firstPersonWords  = wordSet("i", "me", "my", "myself", "mine")
	secondPersonWords = wordSet("you", "your", "yours", "yourself")
	thirdPersonWords  = wordSet("he", "she", "they", "him", "her", "them")

	positiveWords = wordSet("happy", "excited", "love", "amazing", "great", "awesome",
		"fantastic", "wonderful", "excellent", "perfect", "brilliant", "outstanding")
	negativeWords = wordSet("sad", "angry", "hate", "terrible", "awful", "horrible",
		"disgusting", "worried", "anxious", "stressed", "frustrated", "disappointed")
	certaintyWords   = wordSet("definitely", "certainly", "absolutely", "sure", "confident", "always", "never")
	uncertaintyWords = wordSet("maybe", "perhaps", "might", "possibly", "sometimes", "usually", "probably")
)

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// Vector holds linguistic ratios against the processed word count.
type Vector struct {
	AvgWordLength        float64 `json:"avg_word_length"`
	ExclamationRatio     float64 `json:"exclamation_ratio"`
	QuestionRatio        float64 `json:"question_ratio"`
	FirstPersonRatio     float64 `json:"first_person_ratio"`
	SecondPersonRatio    float64 `json:"second_person_ratio"`
	ThirdPersonRatio     float64 `json:"third_person_ratio"`
	PositiveEmotionRatio float64 `json:"positive_emotion_ratio"`
	NegativeEmotionRatio float64 `json:"negative_emotion_ratio"`
	CertaintyRatio       float64 `json:"certainty_ratio"`
	UncertaintyRatio     float64 `json:"uncertainty_ratio"`
	WordCount            int     `json:"word_count"`
}

// IsEmpty reports whether the vector came from zero-word input.
func (v Vector) IsEmpty() bool {
	return v.WordCount == 0
}

// AsMap exposes the vector as a named mapping. The empty vector maps to an
// empty map.
func (v Vector) AsMap() map[string]float64 {
	if v.IsEmpty() {
		return map[string]float64{}
	}
	return map[string]float64{
		"avg_word_length":        v.AvgWordLength,
		"exclamation_ratio":      v.ExclamationRatio,
		"question_ratio":         v.QuestionRatio,
		"first_person_ratio":     v.FirstPersonRatio,
		"second_person_ratio":    v.SecondPersonRatio,
		"third_person_ratio":     v.ThirdPersonRatio,
		"positive_emotion_ratio": v.PositiveEmotionRatio,
		"negative_emotion_ratio": v.NegativeEmotionRatio,
		"certainty_ratio":        v.CertaintyRatio,
		"uncertainty_ratio":      v.UncertaintyRatio,
		"word_count":             float64(v.WordCount),
	}
}

// Result is the output of Extract.
type Result struct {
	ProcessedText string `json:"processed_text"`
	Features      Vector `json:"features"`
	WordCount     int    `json:"word_count"`
	SentenceCount int    `json:"sentence_count"`
}

// Extract cleans text for mode and computes its feature vector. Blank text
// gives an all-empty Result, which callers treat as insufficient input.
func Extract(text, mode string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	processed := Clean(text, mode)
	words := strings.Fields(processed)

	return Result{
		ProcessedText: processed,
		Features:      compute(text, words),
		WordCount:     len(words),
		SentenceCount: countSentences(processed),
	}
}

func countSentences(processed string) int {
	n := 0
	for _, s := range strings.Split(processed, ".") {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// compute counts punctuation and pronouns against the original text, since
// cleaning may rewrite them.
func compute(original string, words []string) Vector {
	if len(words) == 0 {
		return Vector{}
	}
	total := float64(len(words))

	letters := 0
	for _, w := range words {
		letters += len([]rune(w))
	}

	originalWords := strings.Fields(strings.ToLower(original))

	return Vector{
		AvgWordLength:        float64(letters) / total,
		ExclamationRatio:     float64(strings.Count(original, "!")) / total,
		QuestionRatio:        float64(strings.Count(original, "?")) / total,
		FirstPersonRatio:     float64(countIn(originalWords, firstPersonWords)) / total,
		SecondPersonRatio:    float64(countIn(originalWords, secondPersonWords)) / total,
		ThirdPersonRatio:     float64(countIn(originalWords, thirdPersonWords)) / total,
		PositiveEmotionRatio: float64(countIn(words, positiveWords)) / total,
		NegativeEmotionRatio: float64(countIn(words, negativeWords)) / total,
		CertaintyRatio:       float64(countIn(words, certaintyWords)) / total,
		UncertaintyRatio:     float64(countIn(words, uncertaintyWords)) / total,
		WordCount:            len(words),
	}
}

func countIn(words []string, set map[string]struct{}) int {
	n := 0
	for _, w := range words {
		if _, ok := set[w]; ok {
			n++
		}
	}
	return n
}
