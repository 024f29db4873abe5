package lexer

// Raw scanning is used for text the parser keeps verbatim: function bodies,
// attributes and const values. It only tracks nesting, string and char
// literals and comments, so arbitrary expression syntax passes through
// without lexical errors.

// Rewind moves the lexer back to off and drops any buffered lookahead.
func (lx *Lexer) Rewind(off uint32) {
	lx.look = nil
	lx.hold = nil
	lx.cursor.Reset(Mark(off))
}

// SkipBalanced consumes bytes up to and including the closer matching an
// opener that was already consumed. It returns the offset just past the
// closer, or false at EOF.
func (lx *Lexer) SkipBalanced(open, closer byte) (uint32, bool) {
	depth := 1
	for !lx.cursor.EOF() {
		if lx.skipRawLiteralOrComment() {
			continue
		}
		switch lx.cursor.Bump() {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return lx.cursor.Off, true
			}
		}
	}
	return lx.cursor.Off, false
}

// ScanUntilSemicolon consumes bytes up to a ';' outside of any brackets.
// The ';' itself is not consumed. It returns the offset of the ';', or
// false when EOF or an unbalanced closer came first.
func (lx *Lexer) ScanUntilSemicolon() (uint32, bool) {
	depth := 0
	for !lx.cursor.EOF() {
		if lx.skipRawLiteralOrComment() {
			continue
		}
		switch lx.cursor.Peek() {
		case ';':
			if depth == 0 {
				return lx.cursor.Off, true
			}
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				return lx.cursor.Off, false
			}
			depth--
		}
		lx.cursor.Bump()
	}
	return lx.cursor.Off, false
}

// skipRawLiteralOrComment consumes one string, char literal or comment at
// the cursor and reports whether it did.
func (lx *Lexer) skipRawLiteralOrComment() bool {
	b0, b1, _ := lx.cursor.Peek2()
	switch {
	case b0 == '"':
		lx.cursor.Bump()
		for !lx.cursor.EOF() {
			switch lx.cursor.Bump() {
			case '\\':
				lx.cursor.Bump()
			case '"':
				return true
			}
		}
		return true
	case b0 == '/' && b1 == '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return true
	case b0 == '/' && b1 == '*':
		lx.cursor.Bump()
		lx.cursor.Bump()
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			switch {
			case lx.try2('/', '*'):
				depth++
			case lx.try2('*', '/'):
				depth--
			default:
				lx.cursor.Bump()
			}
		}
		return true
	case b0 == '\'':
		return lx.skipCharLiteral()
	}
	return false
}

// skipCharLiteral consumes 'x' or '\n'. A lifetime such as 'a is left alone.
func (lx *Lexer) skipCharLiteral() bool {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '
	if lx.cursor.Eat('\\') {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.cursor.Eat('\'')
		return true
	}
	lx.bumpRune()
	if lx.cursor.Eat('\'') {
		return true
	}
	lx.cursor.Reset(start)
	return false
}
