package lexer

import "regionorm/internal/token"

// scanNumber reads an integer literal: 42, 1_000, 0xFF, 3usize.
// Suffixes and digit separators are kept in Text untouched.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.IntLit, Span: sp, Text: lx.text(sp)}
}
