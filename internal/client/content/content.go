// Package content converts post bodies between the shapes the editor, the
// API and the terminal need.
//
// The editor produces HTML. The API stores either that HTML as-is or an
// envelope {"version":"1.0","content":"<html>"}; both are accepted on read.
package content

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// EnvelopeVersion is the format tag written by ToEnvelope.
const EnvelopeVersion = "1.0"

// Envelope is the JSON wrapper some backends use for post bodies.
type Envelope struct {
	Version string `json:"version"`
	Content string `json:"content"`
}

// ToEnvelope wraps editor HTML in an Envelope.
func ToEnvelope(htmlBody string) Envelope {
	return Envelope{Version: EnvelopeVersion, Content: htmlBody}
}

// ExtractHTML returns the HTML carried by body. A JSON envelope string is
// unwrapped; anything else is returned unchanged.
func ExtractHTML(body string) string {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") {
		return body
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &probe); err != nil {
		return body
	}
	raw, ok := probe["content"]
	if !ok {
		return body
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return body
	}
	return inner
}

// blockElements end a line when rendered as plain text.
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true, atom.Tr: true,
}

// PlainText renders HTML as terminal text: tags are dropped, block
// elements become line breaks, and runs of blank lines are collapsed.
func PlainText(htmlBody string) string {
	z := html.NewTokenizer(strings.NewReader(htmlBody))
	var b strings.Builder

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far is kept
			return collapse(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if !blockElements[a] {
				continue
			}
			if tt == html.EndTagToken || a == atom.Br {
				b.WriteByte('\n')
			}
			if a == atom.Li && tt == html.StartTagToken {
				b.WriteString("- ")
			}
		}
	}
}

func collapse(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, l := range lines {
		l = strings.TrimRight(l, " \t")
		if strings.TrimSpace(l) == "" {
			if blank || len(out) == 0 {
				continue
			}
			blank = true
			out = append(out, "")
			continue
		}
		blank = false
		out = append(out, l)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// Mark is a text-style mark set by the editor on a run of text.
type Mark struct {
	FontFamily string
	FontSize   string
	Text       string
}

// Marks lists the font-family / font-size text-style marks found in
// htmlBody, in document order. Quotes around family names are stripped,
// matching how the editor parses them back.
func Marks(htmlBody string) []Mark {
	z := html.NewTokenizer(strings.NewReader(htmlBody))
	var marks []Mark
	var open []int // index into marks for each open <span>, -1 if unstyled

	for {
		switch z.Next() {
		case html.ErrorToken:
			return marks
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if atom.Lookup(name) != atom.Span {
				continue
			}
			m, ok := markFromAttrs(z, hasAttr)
			if !ok {
				open = append(open, -1)
				continue
			}
			marks = append(marks, m)
			open = append(open, len(marks)-1)
		case html.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Span && len(open) > 0 {
				open = open[:len(open)-1]
			}
		case html.TextToken:
			for _, idx := range open {
				if idx >= 0 {
					marks[idx].Text += string(z.Text())
				}
			}
		}
	}
}

func markFromAttrs(z *html.Tokenizer, hasAttr bool) (Mark, bool) {
	var m Mark
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		if string(key) != "style" {
			continue
		}
		for _, decl := range strings.Split(string(val), ";") {
			prop, value, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			value = strings.TrimSpace(value)
			switch strings.ToLower(strings.TrimSpace(prop)) {
			case "font-family":
				m.FontFamily = strings.NewReplacer(`"`, "", `'`, "").Replace(value)
			case "font-size":
				m.FontSize = value
			}
		}
	}
	return m, m.FontFamily != "" || m.FontSize != ""
}

// FromPlainText turns terminal input into editor HTML: each paragraph
// (separated by a blank line) becomes a <p>, single line breaks become
// <br>, and text is escaped.
func FromPlainText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var b strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, l := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(l))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}
