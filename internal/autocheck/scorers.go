package autocheck

import (
	"strings"

	"github.com/jmertens/veracity/internal/classify"
	"github.com/jmertens/veracity/internal/model"
)

// Scorer weights. They must sum to exactly 1.0 so an aggregate over inputs
// in [0,100] stays in [0,100].
const (
	weightSourceMatch = 0.40
	weightClaimType   = 0.25
	weightConsistency = 0.15
	weightTemporal    = 0.10
	weightHedging     = 0.05
	weightToxicity    = 0.05
)

const (
	// Cross-source consistency and temporal plausibility are fixed pending
	// real multi-source comparison and timestamp-contradiction detection.
	consistencyStubScore = 70
	temporalStubScore    = 80

	// Toxicity above this raw value always forces human review.
	toxicityOverrideThreshold = 0.5
)

// authoritativeDomains is the closed list of government, press and academic
// domains the source-match scorer looks for in the claim text itself. This
// is a lexical check only; real citation lookup happens during evidence
// collection.
var authoritativeDomains = []string{
	"bundestag.de",
	"bundesregierung.de",
	"destatis.de",
	"europa.eu",
	"bundesanzeiger.de",
	"who.int",
	"un.org",
	"reuters.com",
	"apnews.com",
	"tagesschau.de",
	"zeit.de",
	"spiegel.de",
	"faz.net",
	"nature.com",
	"science.org",
	".gov",
}

// hedgeWords soften a claim. Definitive claims score higher here: unhedged
// certainty is treated as a positive signal by this heuristic.
var hedgeWords = []string{
	"could", "might", "possibly", "perhaps", "maybe",
	"könnte", "möglicherweise", "vielleicht", "eventuell", "womöglich",
}

// toxicTerms is the closed list of inflammatory or defamation-prone terms
var toxicTerms = []string{
	"lie", "fraud", "corruption", "scandal",
	"lüge", "betrug", "korruption", "skandal",
}

// riskKeywords mark topics where a wrong claim does outsized harm. Any hit
// forces human review regardless of the aggregate score.
var riskKeywords = []string{
	"election", "vote", "party", "medicine", "disease", "diagnosis",
	"therapy", "violence", "terror", "weapon", "attack", "leak",
	"wahl", "abstimmung", "partei", "medizin", "krankheit", "diagnose",
	"therapie", "gewalt", "waffe", "angriff",
}

// scoreSourceMatch returns 90 when the claim text itself references a known
// authoritative domain, else 30.
func scoreSourceMatch(text string) float64 {
	lower := strings.ToLower(text)
	for _, domain := range authoritativeDomains {
		if strings.Contains(lower, domain) {
			return 90
		}
	}
	return 30
}

// scoreClaimType returns a type-specific plausibility bonus: statistics with
// a digit 85, legal claims with a legal keyword 80, quotes with quotation
// marks 75, everything else a neutral 50.
func scoreClaimType(c model.Claim) float64 {
	switch c.Type {
	case model.ClaimTypeStatistic:
		if classify.ContainsDigit(c.Text) {
			return 85
		}
	case model.ClaimTypeLegal:
		if classify.ContainsLegalKeyword(c.Text) {
			return 80
		}
	case model.ClaimTypeQuote:
		if classify.ContainsQuoteMarks(c.Text) {
			return 75
		}
	}
	return 50
}

// scoreHedging returns 60 when the claim hedges, 90 when it is definitive
func scoreHedging(text string) float64 {
	lower := strings.ToLower(text)
	for _, word := range hedgeWords {
		if containsWord(lower, word) {
			return 60
		}
	}
	return 90
}

// scoreToxicity returns a raw value on the [0,1] scale: 0.95 when an
// inflammatory term appears, else 0.10. Note the inversion relative to the
// other scorers: here higher means more toxic, not more trustworthy.
func scoreToxicity(text string) float64 {
	lower := strings.ToLower(text)
	for _, term := range toxicTerms {
		if strings.Contains(lower, term) {
			return 0.95
		}
	}
	return 0.10
}

// riskKeywordIn returns the first risk keyword found in the text, if any
func riskKeywordIn(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, kw := range riskKeywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

func containsWord(lowerText, word string) bool {
	idx := strings.Index(lowerText, word)
	for idx >= 0 {
		before := idx == 0 || !isWordByte(lowerText[idx-1])
		end := idx + len(word)
		after := end >= len(lowerText) || !isWordByte(lowerText[end])
		if before && after {
			return true
		}
		next := strings.Index(lowerText[idx+1:], word)
		if next < 0 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b >= 0x80
}
