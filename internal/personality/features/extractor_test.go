// internal/personality/features/extractor_test.go
package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Cleaning Tests
// ==========================

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		mode     string
		expected string
	}{
		{
			name:     "general expands contractions",
			text:     "I'm sure it's GREAT, don't worry",
			mode:     ModeGeneral,
			expected: "i am sure it is great, do not worry",
		},
		{
			name:     "general replaces urls and emails",
			text:     "Check https://example.com or mail bob@example.com",
			mode:     ModeGeneral,
			expected: "check [URL] or mail [EMAIL]",
		},
		{
			name:     "general collapses whitespace",
			text:     "  lots \n\t of   space  ",
			mode:     ModeGeneral,
			expected: "lots of space",
		},
		{
			name:     "contractions respect word boundaries",
			text:     "Wasn't it? wasn'tx",
			mode:     ModeGeneral,
			expected: "was not it? wasn'tx",
		},
		{
			name:     "jd strips boilerplate and normalizes synonyms",
			text:     "Duties and qualifications. Apply Now!",
			mode:     ModeJobDesc,
			expected: "responsibilities and requirements. !",
		},
		{
			name:     "jd normalizes skill clusters",
			text:     "Abilities: strong skill set. Click here to apply",
			mode:     ModeJobDesc,
			expected: "skills: strong skills set.",
		},
		{
			name:     "quest keeps contractions",
			text:     "I'm  HAPPY http://a.b",
			mode:     ModeQuest,
			expected: "i'm happy [URL]",
		},
		{
			name:     "conversation falls through to general",
			text:     "You're awesome",
			mode:     ModeConversation,
			expected: "you are awesome",
		},
		{
			name:     "unknown mode falls through to general",
			text:     "They've LEFT",
			mode:     "poetry",
			expected: "they have left",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.text, tt.mode))
		})
	}
}

// ==========================
// Extraction Tests
// ==========================

func TestExtract_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		res := Extract(text, ModeGeneral)
		assert.Equal(t, "", res.ProcessedText)
		assert.True(t, res.Features.IsEmpty())
		assert.Empty(t, res.Features.AsMap())
		assert.Zero(t, res.WordCount)
		assert.Zero(t, res.SentenceCount)
	}
}

func TestExtract_Ratios(t *testing.T) {
	res := Extract("I love my team! Do you?", ModeGeneral)

	require.Equal(t, 6, res.WordCount)
	assert.Equal(t, "i love my team! do you?", res.ProcessedText)
	assert.Equal(t, 1, res.SentenceCount)

	f := res.Features
	assert.InDelta(t, 3.0, f.AvgWordLength, 1e-9)
	assert.InDelta(t, 1.0/6, f.ExclamationRatio, 1e-9)
	assert.InDelta(t, 1.0/6, f.QuestionRatio, 1e-9)
	assert.InDelta(t, 2.0/6, f.FirstPersonRatio, 1e-9)
	// "you?" keeps its punctuation after splitting, so it is not counted.
	assert.Zero(t, f.SecondPersonRatio)
	assert.InDelta(t, 1.0/6, f.PositiveEmotionRatio, 1e-9)
	assert.Zero(t, f.NegativeEmotionRatio)
}

func TestExtract_PronounsUseOriginalText(t *testing.T) {
	// General cleaning rewrites "I'm" to "i am", but pronouns are counted on
	// the original words, where "i'm" is not a pronoun token.
	res := Extract("I'm here", ModeGeneral)

	assert.Equal(t, "i am here", res.ProcessedText)
	assert.Equal(t, 3, res.WordCount)
	assert.Zero(t, res.Features.FirstPersonRatio)
}

func TestExtract_CertaintyAndUncertainty(t *testing.T) {
	res := Extract("definitely maybe always probably sad", ModeQuest)

	assert.InDelta(t, 2.0/5, res.Features.CertaintyRatio, 1e-9)
	assert.InDelta(t, 2.0/5, res.Features.UncertaintyRatio, 1e-9)
	assert.InDelta(t, 1.0/5, res.Features.NegativeEmotionRatio, 1e-9)
}

func TestExtract_SentenceCount(t *testing.T) {
	res := Extract("One. Two.  . Three", ModeGeneral)
	assert.Equal(t, 3, res.SentenceCount)
}

func TestVector_AsMap(t *testing.T) {
	res := Extract("hello world", ModeGeneral)
	m := res.Features.AsMap()

	assert.Len(t, m, 11)
	assert.Equal(t, 2.0, m["word_count"])
	assert.InDelta(t, 5.0, m["avg_word_length"], 1e-9)
}
