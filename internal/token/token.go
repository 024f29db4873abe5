package token

import "regionorm/internal/source"

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwImpl && t.Kind <= KwStruct
}

// IsPunct reports whether the token is punctuation or an operator.
func (t Token) IsPunct() bool {
	return t.Kind >= Amp && t.Kind <= Underscore
}

// IsAnonymousLifetime reports whether the token is the '_ marker.
func (t Token) IsAnonymousLifetime() bool {
	return t.Kind == Lifetime && t.Text == "'_"
}
