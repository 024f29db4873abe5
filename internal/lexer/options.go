package lexer

import (
	"regionorm/internal/diag"
	"regionorm/internal/source"
)

// Options configure a Lexer.
type Options struct {
	// Reporter may be nil: errors are dropped but lexing continues.
	Reporter diag.Reporter
	// KeepTrivia attaches whitespace and comments to Token.Leading.
	KeepTrivia bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
