// Package richtext converts the constrained HTML produced by the resume
// editor into flat layout blocks the PDF layer can draw without re-parsing.
package richtext

import (
	"strings"

	"golang.org/x/net/html"
)

type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindBullet    BlockKind = "bullet"
	KindNumbered  BlockKind = "numbered"
)

// Span is a run of text with inline style flags.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
}

// Block is one renderable line group: a paragraph, a bulleted line or a
// numbered line. Number is the 1-based position for numbered blocks.
type Block struct {
	Kind   BlockKind
	Number int
	Spans  []Span
}

// Text concatenates the block's spans without styling.
func (b Block) Text() string {
	var sb strings.Builder
	for _, s := range b.Spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func (b Block) empty() bool {
	return strings.TrimSpace(b.Text()) == ""
}

// Flatten parses the editor's HTML subset into an ordered block sequence.
// Recognized block tags: p, div, ul, ol. Inline tags: strong/b, em/i. Any
// other tag is ignored but its text content is still recursed into. If the
// input contains no recognized block tags, the tag-stripped text is split on
// newlines, one paragraph per non-empty line.
func Flatten(input string) []Block {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	root, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return fallbackLines(input)
	}

	var blocks []Block
	sawBlockTag := false

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div":
				sawBlockTag = true
				b := Block{Kind: KindParagraph, Spans: collectSpans(n, false, false)}
				if !b.empty() {
					blocks = append(blocks, b)
				}
				return
			case "ul":
				sawBlockTag = true
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type != html.ElementNode || c.Data != "li" {
						continue
					}
					b := Block{Kind: KindBullet, Spans: collectSpans(c, false, false)}
					if !b.empty() {
						blocks = append(blocks, b)
					}
				}
				return
			case "ol":
				sawBlockTag = true
				// Empty items are skipped and do not consume a number, so
				// numbering is contiguous over rendered items only.
				num := 0
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type != html.ElementNode || c.Data != "li" {
						continue
					}
					b := Block{Kind: KindNumbered, Spans: collectSpans(c, false, false)}
					if b.empty() {
						continue
					}
					num++
					b.Number = num
					blocks = append(blocks, b)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if !sawBlockTag {
		return fallbackLines(input)
	}
	return blocks
}

// collectSpans gathers inline-formatted runs under n, carrying bold/italic
// flags through nested elements.
func collectSpans(n *html.Node, bold, italic bool) []Span {
	var spans []Span
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if c.Data == "" {
				continue
			}
			spans = append(spans, Span{Text: c.Data, Bold: bold, Italic: italic})
		case html.ElementNode:
			b, i := bold, italic
			switch c.Data {
			case "strong", "b":
				b = true
			case "em", "i":
				i = true
			}
			spans = append(spans, collectSpans(c, b, i)...)
		}
	}
	return spans
}

// fallbackLines strips tags and emits one paragraph per non-empty line.
func fallbackLines(input string) []Block {
	text := stripTags(input)
	var blocks []Block
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		blocks = append(blocks, Block{Kind: KindParagraph, Spans: []Span{{Text: line}}})
	}
	return blocks
}

func stripTags(input string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range input {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
