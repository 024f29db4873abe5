package token

var keywords = map[string]Kind{
	"impl":   KwImpl,
	"fn":     KwFn,
	"trait":  KwTrait,
	"for":    KwFor,
	"mut":    KwMut,
	"const":  KwConst,
	"self":   KwSelf,
	"type":   KwType,
	"dyn":    KwDyn,
	"unsafe": KwUnsafe,
	"extern": KwExtern,
	"pub":    KwPub,
	"where":  KwWhere,
	"struct": KwStruct,
}

// LookupKeyword reports the keyword kind for ident, if any.
// Keywords are case sensitive: "Self" is an ordinary identifier.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
