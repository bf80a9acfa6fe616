package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

func collectTextNodes(node *html.Node, out *[]string) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		*out = append(*out, node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		collectTextNodes(child, out)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText strips non-printable characters, trims the ends and collapses
// inner runs of whitespace into a single space.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.TrimSpace(s)
	s = innerWhitespace.ReplaceAllString(s, " ")
	return s
}

// Text returns the cleaned text content of the first node in the selection.
func Text(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return CleanText(GetText(sel.Nodes[0]))
}

// JoinLines returns the text of every line-like piece of the first node in
// the selection (text separated by markup such as <br> or nested elements, or
// by newlines), cleaned and joined with sep. Empty pieces are skipped.
func JoinLines(sel *goquery.Selection, sep string) string {
	if sel.Length() == 0 {
		return ""
	}

	var pieces []string
	collectTextNodes(sel.Nodes[0], &pieces)

	var lines []string
	for _, piece := range pieces {
		for _, line := range strings.Split(piece, "\n") {
			line = CleanText(line)
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, sep)
}
