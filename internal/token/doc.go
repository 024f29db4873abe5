// Package token defines lexical token kinds and trivia for signature files.
// Invariants:
//   - Token.Text is exactly the source bytes covered by Token.Span, except for
//     identifiers, which are NFC-normalized.
//   - Lifetimes are single tokens including the leading quote ('a, '_, 'static).
//   - Comments and whitespace never appear in the main stream; they are
//     attached to the following token as Leading trivia.
package token
