// Package detect watches a live document for the service's usage-limit banner
// and turns the advertised reset time into an absolute instant.
package detect

import (
	"regexp"
	"strings"
)

// DefaultPatterns match the two banner styles. Each captures the time token.
var DefaultPatterns = []*regexp.Regexp{
	// "available again until 5 PM"
	regexp.MustCompile(`(?i)until\s+(\d{1,2}(?::\d{2})?\s*(?:AM|PM))`),
	// "Usage limit reached ∙ Resets 11:00 PM"
	regexp.MustCompile(`(?i)Resets\s+(\d{1,2}(?::\d{2})?\s*(?:AM|PM))`),
}

// hints is a cheap case-sensitive pre-filter applied before the patterns.
var hints = []string{"until", "Resets", "limit"}

const minCandidateLength = 5

// Match is a banner found in the document.
type Match struct {
	Text  string
	Token string
}

// Scanner searches a document tree for a limit banner.
type Scanner struct {
	Patterns []*regexp.Regexp
}

// NewScanner returns a scanner using DefaultPatterns.
func NewScanner() *Scanner {
	return &Scanner{Patterns: DefaultPatterns}
}

// Candidate reports whether text is worth testing against the patterns.
func Candidate(text string) bool {
	txt := strings.TrimSpace(text)
	if len(txt) <= minCandidateLength {
		return false
	}
	for _, h := range hints {
		if strings.Contains(txt, h) {
			return true
		}
	}
	return false
}

// MatchText tests text against the patterns in order; the first hit wins.
func (s *Scanner) MatchText(text string) (Match, bool) {
	for _, re := range s.Patterns {
		if m := re.FindStringSubmatch(text); len(m) > 1 {
			return Match{Text: text, Token: m[1]}, true
		}
	}
	return Match{}, false
}

// Scan looks for a banner under root. The text of root itself is searched
// from the last node backwards; attached subtrees are searched afterwards, in
// document order, and the first match anywhere ends the search.
func (s *Scanner) Scan(root Node) (Match, bool) {
	if root == nil {
		return Match{}, false
	}
	nodes := textNodes(root, Candidate)
	for i := len(nodes) - 1; i >= 0; i-- {
		txt, _ := nodes[i].Text()
		if m, ok := s.MatchText(txt); ok {
			return m, true
		}
	}
	for _, host := range shadowHosts(root) {
		if m, ok := s.Scan(host.ShadowRoot()); ok {
			return m, true
		}
	}
	return Match{}, false
}
