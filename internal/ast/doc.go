// Package ast holds the syntax tree of signature files.
//
// The tree is pointer based and mutable: passes such as internal/normalize
// rewrite lifetimes and grow generics lists in place. Types, generic
// arguments and items follow the Kind + Data layout: Kind selects which
// payload type Data holds.
//
// Three constructs open an independent inner scope for regions: function
// pointer types (TypeBareFn), parenthesized callback arguments (ParenArgs,
// as in Fn(&u8) -> &u8) and nested items. OpensInnerScope reports them so
// that visitors can stop at the boundary.
package ast
