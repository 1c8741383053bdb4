package evolution

import (
	"strings"
	"unicode"

	"github.com/ShayCichocki/agentbuilder/pkg/models"
)

// ThemeKeywords binds a theme to the words that select it.
type ThemeKeywords struct {
	Theme    models.Theme
	Keywords []string
}

// PriorityKeywords binds a priority to the words that select it.
type PriorityKeywords struct {
	Priority models.Priority
	Keywords []string
}

// DefaultThemeKeywords is checked in order; the first matching theme wins.
// Anything unmatched is ThemeGeneral.
var DefaultThemeKeywords = []ThemeKeywords{
	{models.ThemeSecurity, []string{"security", "auth", "permissions", "policy", "vuln"}},
	{models.ThemePerformance, []string{"performance", "latency", "speed", "optimize", "fast"}},
	{models.ThemeTesting, []string{"test", "coverage", "qa", "regression"}},
	{models.ThemeUX, []string{"ux", "ui", "chat", "experience", "interface", "usability", "layout", "display"}},
}

// DefaultPriorityKeywords is checked in order; the first matching priority wins.
// Anything unmatched is PriorityP2.
var DefaultPriorityKeywords = []PriorityKeywords{
	{models.PriorityP0, []string{"urgent", "critical", "blocker", "immediately"}},
	{models.PriorityP1, []string{"important", "soon", "high", "must"}},
}

// Classification is the result of classifying one feedback text.
type Classification struct {
	Theme    models.Theme
	Priority models.Priority
	// ThemeKeyword and PriorityKeyword record what triggered the match, if anything.
	ThemeKeyword    string
	PriorityKeyword string
}

// Classify assigns a theme and priority to feedback text.
//
// A keyword matches when some word of the lower-cased text starts with it, so
// "tests" and "testing" select the testing theme while "latest" does not.
func Classify(text string) Classification {
	words := tokenize(text)

	c := Classification{Theme: models.ThemeGeneral, Priority: models.PriorityP2}

	for _, tk := range DefaultThemeKeywords {
		if kw, ok := firstMatch(words, tk.Keywords); ok {
			c.Theme, c.ThemeKeyword = tk.Theme, kw
			break
		}
	}

	for _, pk := range DefaultPriorityKeywords {
		if kw, ok := firstMatch(words, pk.Keywords); ok {
			c.Priority, c.PriorityKeyword = pk.Priority, kw
			break
		}
	}

	return c
}

// ClassifyTheme returns just the theme for a feedback text.
func ClassifyTheme(text string) models.Theme {
	return Classify(text).Theme
}

// ClassifyPriority returns just the priority for a feedback text.
func ClassifyPriority(text string) models.Priority {
	return Classify(text).Priority
}

// tokenize lower-cases text and splits it on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func firstMatch(words, keywords []string) (string, bool) {
	for _, kw := range keywords {
		for _, w := range words {
			if strings.HasPrefix(w, kw) {
				return kw, true
			}
		}
	}
	return "", false
}
