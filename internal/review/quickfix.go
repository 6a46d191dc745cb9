package review

import (
	"regexp"
	"strings"

	"github.com/jmertens/veracity/internal/classify"
	"github.com/jmertens/veracity/internal/model"
)

// Absolute quantifiers that make a claim harder to defend than it needs to be
var absoluteQuantifiers = []string{
	"always", "never", "all", "every", "none",
	"immer", "nie", "niemals", "alle", "jede", "jeder", "jedes",
}

var quantifierPattern = regexp.MustCompile(`(?i)\b(` + strings.Join(absoluteQuantifiers, "|") + `)\b`)

// GenerateQuickFixes produces advisory suggestions for softening or
// attributing a claim. Pure function: it never touches the store and never
// mutates the claim — applying a suggestion is entirely the reviewer's
// decision.
func GenerateQuickFixes(claim model.Claim) model.QuickFixes {
	var fixes model.QuickFixes

	if claim.Type == model.ClaimTypePrediction {
		fixes.Rewording = "Experten halten es für möglich, dass " + lowerFirst(claim.Text)
	}

	if classify.ContainsDigit(claim.Text) {
		fixes.Attribution = "Laut offiziellen Angaben: " + claim.Text
	}

	if match := quantifierPattern.FindString(claim.Text); match != "" {
		fixes.Conditional = "In vielen Fällen gilt: " +
			quantifierPattern.ReplaceAllString(claim.Text, "oft")
	}

	return fixes
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = []rune(strings.ToLower(string(runes[0])))[0]
	return string(runes)
}
