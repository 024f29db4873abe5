package parser

import (
	"slices"

	"regionorm/internal/ast"
	"regionorm/internal/diag"
	"regionorm/internal/lexer"
	"regionorm/internal/source"
	"regionorm/internal/token"
)

// Options control error reporting of one parse.
type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	buf      []token.Token // lookahead поверх лексера
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
	stray    []string    // комментарии внутри текущего item
}

// ParseFile parses every item of the lexer's file. It never fails: syntax
// errors go to opts.Reporter and the parser resynchronises at the next item.
// Comments are attached to items only when the lexer keeps trivia.
func ParseFile(lx *lexer.Lexer, opts Options) *ast.File {
	p := &Parser{
		lx:   lx,
		file: lx.File(),
		opts: opts,
	}
	p.lastSpan = source.Span{File: p.file.ID}
	f := &ast.File{ID: p.file.ID}
	startSpan := p.peek().Span
	var prev *ast.Item
	for {
		lead := p.boundary(prev)
		if p.at(token.EOF) {
			f.Comments = trimBlank(lead)
			break
		}
		before := p.peek().Span
		it, ok := p.parseItem()
		if ok {
			it.Comments = slices.Concat(lead, it.Comments, p.takeStray())
			f.Items = append(f.Items, it)
			prev = it
			continue
		}
		p.takeStray()
		prev = nil
		p.resyncTop(before)
	}
	f.Span = startSpan.Cover(p.lastSpan)
	return f
}

// IsError reports whether at least one error was reported.
func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

func isItemStarter(k token.Kind) bool {
	switch k {
	case token.KwImpl, token.KwTrait, token.KwFn, token.KwConst, token.KwType,
		token.KwPub, token.KwUnsafe, token.KwExtern, token.KwStruct, token.Hash:
		return true
	default:
		return false
	}
}

// resyncTop прокручивает до ';' (съедая его), '}' верхнего уровня или
// стартового токена следующего item. Хотя бы один токен всегда съедается,
// если парсер не сдвинулся с места.
func (p *Parser) resyncTop(before source.Span) {
	if p.peek().Span == before && !p.at(token.EOF) {
		p.advance()
	}
	depth := 0
	for !p.at(token.EOF) {
		switch k := p.peek().Kind; {
		case k == token.LBrace:
			depth++
		case k == token.RBrace:
			if depth > 0 {
				depth--
			}
			if depth == 0 {
				p.advance()
				return
			}
		case k == token.Semicolon && depth == 0:
			p.advance()
			return
		case depth == 0 && isItemStarter(k):
			return
		}
		p.advance()
	}
}

// resyncMember skips a broken impl or trait member: up to ';', the closing
// '}' of the container (not consumed) or the next member starter.
func (p *Parser) resyncMember(before source.Span) {
	if p.peek().Span == before && !p.at(token.EOF) && !p.at(token.RBrace) {
		p.advance()
	}
	depth := 0
	for !p.at(token.EOF) {
		switch k := p.peek().Kind; {
		case k == token.LBrace:
			depth++
		case k == token.RBrace:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.advance()
				return
			}
		case k == token.Semicolon && depth == 0:
			p.advance()
			return
		case depth == 0 && isItemStarter(k):
			return
		}
		p.advance()
	}
}
