package evidence

import (
	"net/url"
	"strings"

	"github.com/jmertens/veracity/internal/model"
)

// sourceProfile pairs a source classification with the base evidence score
// assigned to links from that kind of source.
type sourceProfile struct {
	Type  model.SourceType
	Score float64
}

// domainProfiles maps known hosts to their classification. Suffix rules in
// ClassifySource cover whole TLD families (.gov, .edu).
var domainProfiles = map[string]sourceProfile{
	"bundestag.de":           {model.SourceGovernment, 92},
	"bundesregierung.de":     {model.SourceGovernment, 92},
	"destatis.de":            {model.SourceGovernment, 90},
	"europa.eu":              {model.SourceGovernment, 90},
	"who.int":                {model.SourceGovernment, 90},
	"un.org":                 {model.SourceGovernment, 88},
	"gesetze-im-internet.de": {model.SourceOfficialDoc, 86},
	"bundesanzeiger.de":      {model.SourceOfficialDoc, 84},
	"doi.org":                {model.SourcePeerReviewed, 88},
	"nature.com":             {model.SourcePeerReviewed, 88},
	"science.org":            {model.SourcePeerReviewed, 88},
	"arxiv.org":              {model.SourceAcademic, 80},
	"correctiv.org":          {model.SourceFactCheck, 78},
	"snopes.com":             {model.SourceFactCheck, 76},
	"factcheck.org":          {model.SourceFactCheck, 76},
	"politifact.com":         {model.SourceFactCheck, 76},
	"reuters.com":            {model.SourceNews, 70},
	"apnews.com":             {model.SourceNews, 70},
	"tagesschau.de":          {model.SourceNews, 68},
	"zeit.de":                {model.SourceNews, 62},
	"spiegel.de":             {model.SourceNews, 62},
	"faz.net":                {model.SourceNews, 62},
}

// ClassifySource classifies a URL into a source type and base evidence
// score. Unknown hosts are treated as low-trust news; classification must
// never fail, only degrade.
func ClassifySource(rawURL string) (model.SourceType, float64) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return model.SourceNews, 30
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")

	// Exact host, then registrable-domain suffix.
	if p, ok := domainProfiles[host]; ok {
		return p.Type, p.Score
	}
	for domain, p := range domainProfiles {
		if strings.HasSuffix(host, "."+domain) {
			return p.Type, p.Score
		}
	}

	switch {
	case strings.HasSuffix(host, ".gov"):
		return model.SourceGovernment, 90
	case strings.HasSuffix(host, ".edu"):
		return model.SourceAcademic, 82
	case strings.HasSuffix(strings.ToLower(parsed.Path), ".pdf"):
		return model.SourceOfficialDoc, 60
	}

	return model.SourceNews, 40
}
