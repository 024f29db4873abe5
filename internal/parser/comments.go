package parser

import (
	"strings"

	"regionorm/internal/ast"
	"regionorm/internal/token"
)

// takeLeading забирает leading trivia следующего токена: они принадлежат
// границе между item, а не самому item.
func (p *Parser) takeLeading() []token.Trivia {
	p.fill(1)
	lead := p.buf[0].Leading
	p.buf[0].Leading = nil
	return lead
}

// keepStray remembers comments met inside a declaration; they end up above it.
func (p *Parser) keepStray(lead []token.Trivia) {
	for _, tr := range lead {
		if tr.IsComment() {
			p.stray = append(p.stray, tr.Text)
		}
	}
}

func (p *Parser) takeStray() []string {
	out := p.stray
	p.stray = nil
	return out
}

// splitTrailing отделяет комментарии до первого перевода строки, они
// стоят на одной строке с предыдущим item.
func splitTrailing(lead []token.Trivia) (string, []token.Trivia) {
	var parts []string
	for i, tr := range lead {
		switch {
		case tr.Kind == token.TriviaNewline:
			return strings.Join(parts, " "), lead[i:]
		case tr.IsComment():
			parts = append(parts, tr.Text)
		}
	}
	return strings.Join(parts, " "), nil
}

// commentLines keeps the comment text of lead in order. A run of two or more
// line breaks between comments, or between the last comment and the token,
// becomes "".
func commentLines(lead []token.Trivia) []string {
	var lines []string
	breaks := 0
	for _, tr := range lead {
		switch {
		case tr.Kind == token.TriviaNewline:
			breaks += strings.Count(tr.Text, "\n")
		case tr.IsComment():
			if breaks > 1 && len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, tr.Text)
			breaks = 0
		}
	}
	if breaks > 1 && len(lines) > 0 {
		lines = append(lines, "")
	}
	return lines
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// boundary разбирает комментарии перед следующим item: хвост строки уходит
// в prev.Trailing, остальное возвращается строками.
func (p *Parser) boundary(prev *ast.Item) []string {
	lead := p.takeLeading()
	if prev != nil {
		var trail string
		trail, lead = splitTrailing(lead)
		prev.Trailing = trail
	}
	return commentLines(lead)
}
