// Package render holds the read-side text post-processing applied to question
// and answer bodies before they leave the API.
package render

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	clozePattern     = regexp.MustCompile(`{:MCS:=(.*?)}`)
	clozeDelimiter   = regexp.MustCompile(`\s*(\[-?\d+\])?~\s*`)
	codeBlockPattern = regexp.MustCompile("(?s)```lang:\\w+;;(.*?)```")
)

const clozePlaceholder = "<choose option>"

// RewriteClozeOptions extracts the embedded options micro-syntax
// ({:MCS:=opt1~opt2[1]~opt3}) from a cloze body, replaces its first
// occurrence with a placeholder and appends a readable options block.
// Text without the syntax passes through untouched.
func RewriteClozeOptions(text string) string {
	match := clozePattern.FindStringSubmatchIndex(text)
	if match == nil {
		return text
	}

	contents := text[match[2]:match[3]]
	options := clozeDelimiter.Split(contents, -1)

	rewritten := text[:match[0]] + clozePlaceholder + text[match[1]:]
	block := "<pre>Answer options:\n  - " + strings.Join(options, "\n  - ") + "</pre>"
	return rewritten + "\n" + block + "\n"
}

// CodeMarkdownToHTML converts fenced ```lang:<x>;;...``` blocks into
// HTML <pre><code> blocks; everything else passes through.
func CodeMarkdownToHTML(text string) string {
	return codeBlockPattern.ReplaceAllStringFunc(text, func(block string) string {
		content := codeBlockPattern.FindStringSubmatch(block)[1]
		return WrapCodeHTML(strings.TrimSpace(content))
	})
}

// WrapCodeHTML wraps raw code in the highlight-ready HTML block used by the
// question pages.
func WrapCodeHTML(code string) string {
	return fmt.Sprintf("<pre><code class='language-python'>\n%s\n</code></pre>", code)
}
