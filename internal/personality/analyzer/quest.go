// internal/personality/analyzer/quest.go
package analyzer

import "strings"

// QuestInsights holds one keyword reading per quest prompt.
type QuestInsights struct {
	WorkStyle         string `json:"work_style"`
	PassionAnalysis   string `json:"passion_analysis"`
	SocialPreferences string `json:"social_preferences"`
	ImpactMotivation  string `json:"impact_motivation"`
}

type keywordRule struct {
	words   []string
	insight string
}

type keywordTable struct {
	rules    []keywordRule
	fallback string
}

func (t keywordTable) read(response string) string {
	lower := strings.ToLower(response)
	for _, r := range t.rules {
		for _, w := range r.words {
			if strings.Contains(lower, w) {
				return r.insight
			}
		}
	}
	return t.fallback
}

var (
	workTable = keywordTable{
		rules: []keywordRule{
			{[]string{"manage", "lead", "team", "director"}, "Shows leadership orientation and people management skills"},
			{[]string{"create", "design", "build", "develop"}, "Demonstrates creative and building-focused approach"},
			{[]string{"analyze", "data", "research", "study"}, "Indicates analytical and research-oriented mindset"},
		},
		fallback: "Shows diverse professional interests and adaptability",
	}
	passionTable = keywordTable{
		rules: []keywordRule{
			{[]string{"learn", "new", "skill", "course"}, "High drive for continuous learning and growth"},
			{[]string{"help", "community", "volunteer", "impact"}, "Strong orientation toward helping others and social impact"},
			{[]string{"create", "art", "music", "write"}, "Creative expression and artistic interests drive engagement"},
		},
		fallback: "Diverse interests with intrinsic motivation",
	}
	dinnerTable = keywordTable{
		rules: []keywordRule{
			{[]string{"historical", "past", "history", "dead"}, "Values learning from history and past wisdom"},
			{[]string{"family", "friend", "personal"}, "Prioritizes close relationships and personal connections"},
			{[]string{"famous", "celebrity", "leader", "influential"}, "Interested in leadership, influence, and achievement"},
		},
		fallback: "Open to diverse perspectives and meaningful conversations",
	}
	impactTable = keywordTable{
		rules: []keywordRule{
			{[]string{"world", "global", "humanity", "society"}, "Driven by large-scale positive change and global impact"},
			{[]string{"team", "company", "organization", "work"}, "Focused on professional and organizational improvement"},
			{[]string{"family", "friends", "community", "local"}, "Motivated by personal and community-level positive change"},
		},
		fallback: "Balanced approach to making meaningful contributions",
	}
)

// ReadQuestInsights reads the first four responses: work, passion, dinner
// guest and impact, in that order.
func ReadQuestInsights(responses []string) QuestInsights {
	at := func(i int) string {
		if i < len(responses) {
			return responses[i]
		}
		return ""
	}
	return QuestInsights{
		WorkStyle:         workTable.read(at(0)),
		PassionAnalysis:   passionTable.read(at(1)),
		SocialPreferences: dinnerTable.read(at(2)),
		ImpactMotivation:  impactTable.read(at(3)),
	}
}
