package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Lifetime represents a region marker such as 'a or '_.
	Lifetime
	// IntLit represents an integer literal.
	IntLit
	// StringLit represents a string literal (used by extern "ABI").
	StringLit

	KwImpl   // impl
	KwFn     // fn
	KwTrait  // trait
	KwFor    // for
	KwMut    // mut
	KwConst  // const
	KwSelf   // self
	KwType   // type
	KwDyn    // dyn
	KwUnsafe // unsafe
	KwExtern // extern
	KwPub    // pub
	KwWhere  // where
	KwStruct // struct

	Amp        // &
	AndAnd     // && (split into two '&' by the parser)
	Star       // *
	Plus       // +
	Minus      // -
	Assign     // =
	Bang       // !
	Question   // ?
	Lt         // <
	Gt         // >
	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Arrow      // ->
	Dot        // .
	LParen     // (
	RParen     // )
	LBrace     // {
	RBrace     // }
	LBracket   // [
	RBracket   // ]
	Hash       // #
	Underscore // _
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	Lifetime:   "Lifetime",
	IntLit:     "IntLit",
	StringLit:  "StringLit",
	KwImpl:     "impl",
	KwFn:       "fn",
	KwTrait:    "trait",
	KwFor:      "for",
	KwMut:      "mut",
	KwConst:    "const",
	KwSelf:     "self",
	KwType:     "type",
	KwDyn:      "dyn",
	KwUnsafe:   "unsafe",
	KwExtern:   "extern",
	KwPub:      "pub",
	KwWhere:    "where",
	KwStruct:   "struct",
	Amp:        "&",
	AndAnd:     "&&",
	Star:       "*",
	Plus:       "+",
	Minus:      "-",
	Assign:     "=",
	Bang:       "!",
	Question:   "?",
	Lt:         "<",
	Gt:         ">",
	Comma:      ",",
	Semicolon:  ";",
	Colon:      ":",
	ColonColon: "::",
	Arrow:      "->",
	Dot:        ".",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Hash:       "#",
	Underscore: "_",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
