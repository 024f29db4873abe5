package parser

import (
	"regionorm/internal/ast"
	"regionorm/internal/diag"
	"regionorm/internal/source"
	"regionorm/internal/token"
)

// parseType разбирает выражение типа.
func (p *Parser) parseType() (*ast.Type, bool) {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.Amp:
		p.advance()
		return p.parseRefTail(start)
	case token.AndAnd:
		// &&: две ссылки подряд, внешняя без региона
		p.advance()
		inner, ok := p.parseRefTail(start)
		if !ok {
			return nil, false
		}
		outer := ast.NewRef(nil, false, inner)
		outer.Span = inner.Span
		return outer, true
	case token.Star:
		p.advance()
		mut := false
		switch {
		case p.eat(token.KwMut):
			mut = true
		case p.eat(token.KwConst):
		default:
			p.err(diag.SynUnexpectedToken, "expected 'const' or 'mut' after '*'")
			return nil, false
		}
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		return &ast.Type{Kind: ast.TypePtr, Span: p.spanFrom(start), Data: &ast.PtrData{Mut: mut, Elem: elem}}, true
	case token.LBracket:
		return p.parseSliceOrArray()
	case token.LParen:
		return p.parseTupleOrParen()
	case token.Bang:
		p.advance()
		return &ast.Type{Kind: ast.TypeNever, Span: start}, true
	case token.Underscore:
		p.advance()
		return &ast.Type{Kind: ast.TypeInfer, Span: start}, true
	case token.KwFn, token.KwUnsafe, token.KwExtern:
		return p.parseBareFn(nil, start)
	case token.KwFor:
		params, ok := p.parseForLifetimes()
		if !ok {
			return nil, false
		}
		if !p.atOr(token.KwFn, token.KwUnsafe, token.KwExtern) {
			p.err(diag.SynExpectType, "expected function pointer after 'for<...>'")
			return nil, false
		}
		return p.parseBareFn(params, start)
	case token.KwDyn:
		p.advance()
		return p.parseBoundsType(ast.TypeTraitObject, start)
	case token.KwImpl:
		p.advance()
		return p.parseBoundsType(ast.TypeImplTrait, start)
	case token.Ident, token.ColonColon, token.KwSelf:
		path, ok := p.parsePath(true)
		if !ok {
			return nil, false
		}
		return &ast.Type{Kind: ast.TypePath, Span: path.Span, Data: &ast.PathData{Path: path}}, true
	default:
		p.err(diag.SynExpectType, "expected type, got "+describe(p.peek()))
		return nil, false
	}
}

// parseRefTail разбирает ['a] [mut] T после '&'.
func (p *Parser) parseRefTail(start source.Span) (*ast.Type, bool) {
	var lt *ast.Lifetime
	if p.at(token.Lifetime) {
		lt = p.lifetime(p.advance())
	}
	mut := p.eat(token.KwMut)
	elem, ok := p.parseType()
	if !ok {
		return nil, false
	}
	t := ast.NewRef(lt, mut, elem)
	t.Span = p.spanFrom(start)
	return t, true
}

func (p *Parser) parseSliceOrArray() (*ast.Type, bool) {
	open := p.advance() // [
	elem, ok := p.parseType()
	if !ok {
		return nil, false
	}
	var t *ast.Type
	if p.eat(token.Semicolon) {
		n, ok := p.parseConstExpr()
		if !ok {
			return nil, false
		}
		t = &ast.Type{Kind: ast.TypeArray, Data: &ast.ArrayData{Elem: elem, Len: n}}
	} else {
		t = &ast.Type{Kind: ast.TypeSlice, Data: &ast.SliceData{Elem: elem}}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']', got "+describe(p.peek())); !ok {
		p.report(diag.SynUnclosedBracket, diag.SevError, open.Span, "unclosed '['")
		return nil, false
	}
	t.Span = p.spanFrom(open.Span)
	return t, true
}

func (p *Parser) parseTupleOrParen() (*ast.Type, bool) {
	open := p.advance() // (
	var elems []*ast.Type
	trailingComma := false
	for !p.atOr(token.RParen, token.EOF) {
		elem, ok := p.parseType()
		if !ok {
			return nil, false
		}
		elems = append(elems, elem)
		trailingComma = p.eat(token.Comma)
		if !trailingComma {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')', got "+describe(p.peek())); !ok {
		p.report(diag.SynUnclosedParen, diag.SevError, open.Span, "unclosed '('")
		return nil, false
	}
	sp := p.spanFrom(open.Span)
	if len(elems) == 1 && !trailingComma {
		return &ast.Type{Kind: ast.TypeParen, Span: sp, Data: &ast.ParenData{Elem: elems[0]}}, true
	}
	return &ast.Type{Kind: ast.TypeTuple, Span: sp, Data: &ast.TupleData{Elems: elems}}, true
}

func (p *Parser) parseBoundsType(kind ast.TypeKind, start source.Span) (*ast.Type, bool) {
	bounds := p.parseBounds()
	if len(bounds) == 0 {
		p.err(diag.SynExpectType, "expected at least one bound, got "+describe(p.peek()))
		return nil, false
	}
	return &ast.Type{Kind: kind, Span: p.spanFrom(start), Data: &ast.BoundsData{Bounds: bounds}}, true
}

// parseBareFn разбирает [unsafe] [extern "abi"] fn(params) [-> T].
func (p *Parser) parseBareFn(forLifetimes []*ast.GenericParam, start source.Span) (*ast.Type, bool) {
	data := &ast.BareFnData{ForLifetimes: forLifetimes}
	data.Unsafe = p.eat(token.KwUnsafe)
	if p.eat(token.KwExtern) {
		data.Extern = true
		if p.at(token.StringLit) {
			data.ABI = p.advance().Text
		}
	}
	if _, ok := p.expect(token.KwFn, diag.SynExpectType, "expected 'fn'"); !ok {
		return nil, false
	}
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' in function pointer type")
	if !ok {
		return nil, false
	}
	for !p.atOr(token.RParen, token.EOF) {
		if p.atEllipsis() {
			p.advance()
			p.advance()
			p.advance()
			data.Variadic = true
			p.eat(token.Comma)
			break
		}
		pstart := p.peek().Span
		param := &ast.BareFnParam{}
		if p.atOr(token.Ident, token.Underscore) && p.peekN(1).Kind == token.Colon {
			param.Name = p.advance().Text
			p.advance() // :
		}
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		param.Type = ty
		param.Span = p.spanFrom(pstart)
		data.Params = append(data.Params, param)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' in function pointer type"); !ok {
		p.report(diag.SynUnclosedParen, diag.SevError, open.Span, "unclosed '('")
		return nil, false
	}
	if p.eat(token.Arrow) {
		out, ok := p.parseType()
		if !ok {
			return nil, false
		}
		data.Output = out
	}
	return &ast.Type{Kind: ast.TypeBareFn, Span: p.spanFrom(start), Data: data}, true
}

// parsePath разбирает [::]seg(::seg)*. withParens разрешает Fn(A) -> B
// у сегментов.
func (p *Parser) parsePath(withParens bool) (*ast.Path, bool) {
	start := p.peek().Span
	path := &ast.Path{}
	path.Global = p.eat(token.ColonColon)
	for {
		if !p.atOr(token.Ident, token.KwSelf) {
			p.err(diag.SynExpectIdentifier, "expected path segment, got "+describe(p.peek()))
			return nil, false
		}
		name := p.advance()
		seg := &ast.PathSegment{Name: name.Text, Span: name.Span}
		switch {
		case p.at(token.Lt):
			args, ok := p.parseAngleArgs(false)
			if !ok {
				return nil, false
			}
			seg.Angle = args
		case p.at(token.ColonColon) && p.peekN(1).Kind == token.Lt:
			p.advance()
			args, ok := p.parseAngleArgs(true)
			if !ok {
				return nil, false
			}
			seg.Angle = args
		case withParens && p.at(token.LParen):
			args, ok := p.parseParenArgs()
			if !ok {
				return nil, false
			}
			seg.Paren = args
		}
		seg.Span = p.spanFrom(name.Span)
		path.Segments = append(path.Segments, seg)
		if p.at(token.ColonColon) && p.peekN(1).Kind != token.Lt {
			p.advance()
			continue
		}
		break
	}
	path.Span = p.spanFrom(start)
	return path, true
}

func (p *Parser) parseAngleArgs(turbofish bool) (*ast.AngleArgs, bool) {
	open := p.advance() // <
	args := &ast.AngleArgs{Turbofish: turbofish}
	for !p.atOr(token.Gt, token.EOF) {
		start := p.peek().Span
		arg := &ast.GenericArg{}
		switch {
		case p.at(token.Lifetime):
			arg.Kind = ast.ArgLifetime
			arg.Lifetime = p.lifetime(p.advance())
		case p.at(token.Ident) && p.peekN(1).Kind == token.Assign:
			arg.Kind = ast.ArgBinding
			arg.Name = p.advance().Text
			p.advance() // =
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			arg.Type = ty
		case p.atOr(token.IntLit, token.LBrace, token.Minus):
			arg.Kind = ast.ArgConst
			e, ok := p.parseConstExpr()
			if !ok {
				return nil, false
			}
			arg.Const = e
		default:
			arg.Kind = ast.ArgType
			ty, ok := p.parseType()
			if !ok {
				return nil, false
			}
			arg.Type = ty
		}
		arg.Span = p.spanFrom(start)
		args.Args = append(args.Args, arg)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.Gt, diag.SynUnclosedAngle, "expected '>', got "+describe(p.peek())); !ok {
		p.report(diag.SynUnclosedAngle, diag.SevError, open.Span, "unclosed '<'")
		return nil, false
	}
	args.Span = p.spanFrom(open.Span)
	return args, true
}

func (p *Parser) parseParenArgs() (*ast.ParenArgs, bool) {
	open := p.advance() // (
	args := &ast.ParenArgs{}
	for !p.atOr(token.RParen, token.EOF) {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		args.Inputs = append(args.Inputs, ty)
		if !p.eat(token.Comma) {
			break
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')', got "+describe(p.peek())); !ok {
		p.report(diag.SynUnclosedParen, diag.SevError, open.Span, "unclosed '('")
		return nil, false
	}
	if p.eat(token.Arrow) {
		out, ok := p.parseType()
		if !ok {
			return nil, false
		}
		args.Output = out
	}
	args.Span = p.spanFrom(open.Span)
	return args, true
}
