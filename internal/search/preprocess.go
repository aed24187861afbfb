package search

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

// Article is one "## " section of the help center.
type Article struct {
	Title      string
	Paragraphs []string
}

// Flatten rewrites Markdown table rows as standalone paragraphs so each row
// is searchable on its own. Separator rows are dropped. Input without tables
// is returned unchanged.
func Flatten(md []byte) []byte {
	if !bytes.Contains(md, []byte("|")) {
		return md
	}
	var b strings.Builder
	sc := bufio.NewScanner(bytes.NewReader(md))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	sawTable := false
	for sc.Scan() {
		raw := sc.Text()
		line := strings.TrimSpace(raw)
		if !(strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")) {
			b.WriteString(raw)
			b.WriteByte('\n')
			continue
		}
		sawTable = true
		var cells []string
		sep := true
		for _, c := range strings.Split(strings.Trim(line, "|"), "|") {
			cell := strings.TrimSpace(c)
			if strings.Trim(cell, ":- ") != "" {
				sep = false
			}
			if cell != "" {
				cells = append(cells, cell)
			}
		}
		if sep || len(cells) == 0 {
			continue
		}
		b.WriteByte('\n')
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n\n")
	}
	if !sawTable {
		return md
	}
	return []byte(b.String())
}

var (
	headingRE   = regexp.MustCompile(`^##\s+(.+?)\s*#*$`)
	paraSplitRE = regexp.MustCompile(`\n\s*\n`)
)

// ParseArticles splits Markdown into articles at level-two headings. Text
// before the first heading and level-one titles are ignored.
func ParseArticles(md []byte) []Article {
	var (
		out   []Article
		title string
		body  strings.Builder
	)
	flush := func() {
		if title == "" {
			body.Reset()
			return
		}
		a := Article{Title: title}
		for _, p := range paraSplitRE.Split(body.String(), -1) {
			if p = strings.TrimSpace(p); p != "" {
				a.Paragraphs = append(a.Paragraphs, p)
			}
		}
		if len(a.Paragraphs) > 0 {
			out = append(out, a)
		}
		body.Reset()
	}

	sc := bufio.NewScanner(bytes.NewReader(md))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if m := headingRE.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			title = m[1]
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "# ") {
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()
	return out
}
