package lexer

import (
	"regionorm/internal/diag"
	"regionorm/internal/token"
)

// scanLifetime reads 'name, '_ or 'static. Text keeps the leading quote.
func (lx *Lexer) scanLifetime() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '
	if !lx.scanIdentBody() {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadLifetime, sp, "expected lifetime name after '")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	if lx.cursor.Peek() == '\'' {
		// 'a': символьный литерал, в сигнатурах не бывает
		lx.cursor.Bump()
		sp = lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadLifetime, sp, "character literals are not allowed here")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return token.Token{Kind: token.Lifetime, Span: sp, Text: identText(lx.file.Content[sp.Start:sp.End])}
}
