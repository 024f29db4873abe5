package lexer

import (
	"regionorm/internal/diag"
	"regionorm/internal/token"
)

// pairs are tried before singles, longest match wins.
var pairs = [...]struct {
	a, b byte
	kind token.Kind
}{
	{':', ':', token.ColonColon},
	{'-', '>', token.Arrow},
	{'&', '&', token.AndAnd},
}

var singles = func() (t [128]token.Kind) {
	for ch, k := range map[byte]token.Kind{
		'&': token.Amp, '*': token.Star, '+': token.Plus, '-': token.Minus,
		'=': token.Assign, '!': token.Bang, '?': token.Question,
		'<': token.Lt, '>': token.Gt, ',': token.Comma, ';': token.Semicolon,
		':': token.Colon, '.': token.Dot, '#': token.Hash, '_': token.Underscore,
		'(': token.LParen, ')': token.RParen,
		'{': token.LBrace, '}': token.RBrace,
		'[': token.LBracket, ']': token.RBracket,
	} {
		t[ch] = k
	}
	return t
}()

// scanOperatorOrPunct: сначала пары, затем одиночные символы; всё прочее
// становится Invalid с диагностикой.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := token.Invalid
	for _, p := range pairs {
		if lx.try2(p.a, p.b) {
			kind = p.kind
			break
		}
	}
	if kind == token.Invalid {
		if ch := lx.cursor.Bump(); ch < 128 {
			kind = singles[ch]
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if kind == token.Invalid {
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
