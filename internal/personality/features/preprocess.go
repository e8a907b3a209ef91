// internal/personality/features/preprocess.go
package features

import (
	"regexp"
	"strings"
)

// Analysis modes understood by the extractor.
const (
	ModeGeneral      = "general"
	ModeQuest        = "quest"
	ModeConversation = "conversation"
	ModeJobDesc      = "jd"
)

type replacement struct {
	pattern *regexp.Regexp
	with    string
}

var (
	urlPattern        = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	contractions = buildContractions([][2]string{
		{"i'm", "i am"},
		{"you're", "you are"},
		{"he's", "he is"},
		{"she's", "she is"},
		{"it's", "it is"},
		{"we're", "we are"},
		{"they're", "they are"},
		{"i've", "i have"},
		{"you've", "you have"},
		{"we've", "we have"},
		{"they've", "they have"},
		{"i'll", "i will"},
		{"you'll", "you will"},
		{"he'll", "he will"},
		{"she'll", "she will"},
		{"we'll", "we will"},
		{"they'll", "they will"},
		{"won't", "will not"},
		{"can't", "cannot"},
		{"don't", "do not"},
		{"doesn't", "does not"},
		{"didn't", "did not"},
		{"isn't", "is not"},
		{"aren't", "are not"},
		{"wasn't", "was not"},
		{"weren't", "were not"},
		{"haven't", "have not"},
		{"hasn't", "has not"},
		{"hadn't", "had not"},
		{"shouldn't", "should not"},
		{"wouldn't", "would not"},
		{"couldn't", "could not"},
	})

	jdBoilerplate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)equal opportunity employer`),
		regexp.MustCompile(`(?i)we are an equal opportunity`),
		regexp.MustCompile(`(?i)please submit your resume`),
		regexp.MustCompile(`(?i)send your cv to`),
		regexp.MustCompile(`(?i)apply now`),
		regexp.MustCompile(`(?i)click here to apply`),
	}

	jdSynonyms = []replacement{
		{regexp.MustCompile(`\b(requirements?|qualifications?)\b`), "requirements"},
		{regexp.MustCompile(`\b(responsibilities?|duties)\b`), "responsibilities"},
		{regexp.MustCompile(`\b(skills?|abilities)\b`), "skills"},
	}
)

func buildContractions(pairs [][2]string) []replacement {
	out := make([]replacement, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, replacement{
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(p[0]) + `\b`),
			with:    p[1],
		})
	}
	return out
}

// Clean normalizes text for the given mode. Unknown modes, including
// "conversation", get general cleaning.
func Clean(text, mode string) string {
	switch mode {
	case ModeJobDesc:
		return cleanJobDescription(text)
	case ModeQuest:
		return cleanQuest(text)
	default:
		return cleanGeneral(text)
	}
}

func cleanGeneral(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "[URL]")
	text = emailPattern.ReplaceAllString(text, "[EMAIL]")
	for _, c := range contractions {
		text = c.pattern.ReplaceAllString(text, c.with)
	}
	return collapseWhitespace(text)
}

func cleanJobDescription(text string) string {
	text = strings.ToLower(text)
	for _, p := range jdBoilerplate {
		text = p.ReplaceAllString(text, "")
	}
	for _, s := range jdSynonyms {
		text = s.pattern.ReplaceAllString(text, s.with)
	}
	return cleanGeneral(text)
}

// cleanQuest keeps pronouns and emotional words intact.
func cleanQuest(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "[URL]")
	return collapseWhitespace(text)
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}
