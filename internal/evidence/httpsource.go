package evidence

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/jmertens/veracity/internal/model"
	"github.com/jmertens/veracity/internal/worker"
)

const maxSearchBodyBytes = 2_000_000

// HTTPSource discovers evidence by querying a search endpoint per claim and
// extracting the outbound result links. It respects robots.txt and applies a
// per-domain rate limit. Any network failure surfaces as an error to the
// collector, which treats it as "no evidence found" for that claim.
type HTTPSource struct {
	httpClient  *http.Client
	searchURL   string // Template containing one %s for the escaped query
	userAgent   string
	robots      *robotsChecker
	limiter     *worker.Limiter
	maxPerClaim int
}

// NewHTTPSource creates an HTTP-backed evidence source from configuration
func NewHTTPSource(cfg model.EvidenceConfig) (*HTTPSource, error) {
	if cfg.SearchURL == "" {
		return nil, fmt.Errorf("http evidence source requires a search_url")
	}
	if !strings.Contains(cfg.SearchURL, "%s") {
		return nil, fmt.Errorf("search_url must contain a %%s query placeholder")
	}

	maxPerClaim := cfg.MaxPerClaim
	if maxPerClaim <= 0 {
		maxPerClaim = 5
	}

	return &HTTPSource{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		searchURL:   cfg.SearchURL,
		userAgent:   cfg.UserAgent,
		robots:      newRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:     worker.NewLimiter(cfg.RatePerSecond, cfg.RateBurst),
		maxPerClaim: maxPerClaim,
	}, nil
}

// FetchEvidence queries the search endpoint for the claim text and turns the
// outbound links of the result page into evidence rows, classified and
// scored by source authority.
func (s *HTTPSource) FetchEvidence(ctx context.Context, claim model.Claim) ([]model.Evidence, error) {
	target := fmt.Sprintf(s.searchURL, url.QueryEscape(claim.Text))

	if !s.robots.canFetch(ctx, target) {
		return nil, nil
	}
	if err := s.limiter.Wait(ctx, target); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	body, finalURL, err := s.fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	links, err := extractLinks(body, finalURL)
	if err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}

	var rows []model.Evidence
	for _, link := range links {
		if len(rows) >= s.maxPerClaim {
			break
		}
		sourceType, score := ClassifySource(link)
		rows = append(rows, model.Evidence{
			SourceURL:     link,
			SourceType:    sourceType,
			EvidenceScore: score,
		})
	}
	return rows, nil
}

func (s *HTTPSource) fetch(ctx context.Context, target string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetch search results: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSearchBodyBytes))
	if err != nil {
		return "", "", fmt.Errorf("read body: %w", err)
	}
	return string(body), resp.Request.URL.String(), nil
}

// extractLinks collects absolute, deduplicated http(s) links from the page,
// skipping links back to the search host itself.
func extractLinks(htmlContent, baseURL string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	var links []string
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				resolved := resolveLink(base, attr.Val)
				if resolved != "" && !seen[resolved] {
					seen[resolved] = true
					links = append(links, resolved)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links, nil
}

func resolveLink(base *url.URL, href string) string {
	parsed, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	// Links back to the search host are navigation, not evidence.
	if resolved.Host == base.Host {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
