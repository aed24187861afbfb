// Package search is the help-center article index behind support case
// suggestions. Articles are the "## " sections of a Markdown file; each
// paragraph of an article is indexed on its own, carrying the article title
// as extra tokens.
//
// Scoring uses Jaccard similarity between the query token set and each
// paragraph's token set: score = |Q ∩ P| / |Q ∪ P|. The index is read-only
// after construction and safe for concurrent use.
package search

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

//go:embed help.md
var helpMarkdown []byte

// Result is a ranked snippet with its similarity score.
type Result struct {
	Article string  `json:"article"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// Index is the minimal interface implemented by all search indices.
type Index interface {
	TopK(query string, k int) []Result
	// Len is the number of indexed paragraphs.
	Len() int
}

type Option func(*config)

type config struct {
	minParagraphRunes int
	stopwords         map[string]struct{}
	maxDocs           int
}

func defaultConfig() config {
	return config{
		minParagraphRunes: 40,
		stopwords:         DefaultStopwords(),
	}
}

// WithMinParagraphRunes drops paragraphs shorter than n runes.
func WithMinParagraphRunes(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.minParagraphRunes = n
		}
	}
}

// WithStopwords replaces the stop-word list. An empty list keeps the current one.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(map[string]struct{}, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			c.stopwords = m
		}
	}
}

// WithMaxDocs caps the number of indexed paragraphs.
func WithMaxDocs(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDocs = n
		}
	}
}

// DefaultStopwords is a short English list; question words carry no signal
// in help queries.
func DefaultStopwords() map[string]struct{} {
	m := map[string]struct{}{}
	for _, w := range strings.Fields("a an and are as at be by can do for from how i if in is it my of on or the to was what when why with you your") {
		m[w] = struct{}{}
	}
	return m
}

type doc struct {
	article string
	text    string
	tokens  map[string]struct{}
}

type index struct {
	cfg  config
	docs []doc
}

// Default builds the index over the embedded help center.
func Default(opts ...Option) Index {
	idx, _ := NewIndexFromReader(bytes.NewReader(helpMarkdown), opts...)
	return idx
}

// NewIndexFromMarkdown builds an Index from the Markdown file at path.
func NewIndexFromMarkdown(path string, opts ...Option) (Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return &index{cfg: defaultConfig()}, err
	}
	return NewIndexFromReader(bytes.NewReader(b), opts...)
}

// NewIndexFromReader builds an Index from Markdown read from r.
func NewIndexFromReader(r io.Reader, opts ...Option) (Index, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	all, err := io.ReadAll(r)
	if err != nil {
		return &index{cfg: cfg}, err
	}
	return buildIndex(ParseArticles(Flatten(all)), cfg), nil
}

func buildIndex(articles []Article, cfg config) *index {
	var docs []doc
	for _, a := range articles {
		titleToks := tokenize(a.Title, cfg.stopwords)
		for _, raw := range a.Paragraphs {
			t := strings.TrimSpace(normalizeWhitespace(raw))
			if t == "" {
				continue
			}
			if cfg.minParagraphRunes > 0 && utf8.RuneCountInString(t) < cfg.minParagraphRunes {
				continue
			}
			toks := tokenize(t, cfg.stopwords)
			if len(toks) == 0 {
				continue
			}
			for w := range titleToks {
				toks[w] = struct{}{}
			}
			docs = append(docs, doc{article: a.Title, text: t, tokens: toks})
			if cfg.maxDocs > 0 && len(docs) >= cfg.maxDocs {
				return &index{cfg: cfg, docs: docs}
			}
		}
	}
	return &index{cfg: cfg, docs: docs}
}

func (i *index) Len() int { return len(i.docs) }

// TopK returns up to k best-matching paragraphs, at most one per article.
// Ties break on shorter snippet, then lexical order.
func (i *index) TopK(q string, k int) []Result {
	if len(i.docs) == 0 || strings.TrimSpace(q) == "" {
		return nil
	}
	if k <= 0 {
		k = 3
	}
	qTokens := tokenize(q, i.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}

	type scored struct {
		Result
		lenRunes int
	}
	best := map[string]scored{}
	for _, d := range i.docs {
		over := overlap(qTokens, d.tokens)
		if over == 0 {
			continue
		}
		score := float64(over) / float64(len(qTokens)+len(d.tokens)-over)
		cur, seen := best[d.article]
		if seen && cur.Score >= score {
			continue
		}
		best[d.article] = scored{
			Result:   Result{Article: d.article, Snippet: d.text, Score: score},
			lenRunes: utf8.RuneCountInString(d.text),
		}
	}
	if len(best) == 0 {
		return nil
	}

	buf := make([]scored, 0, len(best))
	for _, s := range best {
		buf = append(buf, s)
	}
	sort.Slice(buf, func(a, b int) bool {
		if buf[a].Score != buf[b].Score {
			return buf[a].Score > buf[b].Score
		}
		if buf[a].lenRunes != buf[b].lenRunes {
			return buf[a].lenRunes < buf[b].lenRunes
		}
		return buf[a].Snippet < buf[b].Snippet
	})

	if k > len(buf) {
		k = len(buf)
	}
	out := make([]Result, k)
	for j := range out {
		out[j] = buf[j].Result
	}
	return out
}

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*`)

func tokenize(s string, stop map[string]struct{}) map[string]struct{} {
	words := wordRE.FindAllString(strings.ToLower(s), -1)
	if len(words) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, skip := stop[w]; skip {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\r' || r == '\n' {
			if !prevSpace {
				b.WriteByte(' ')
				prevSpace = true
			}
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
