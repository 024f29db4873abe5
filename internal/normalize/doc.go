// Package normalize makes every region in a signature explicit.
//
// Anonymous ('_) and omitted reference regions in inputs get fresh names
// (__f0, __f1, ... per signature; __i0, ... for the self type of an impl
// header) which are declared in the owning generics list at the position of
// their index. Omitted or anonymous regions in the output are then resolved
// by the elision rules: the receiver's region wins, otherwise the single
// region found in the typed inputs, otherwise the output is left as is and
// reported as unresolved.
//
// Function pointer types, parenthesized Fn-style arguments and nested items
// form their own region scope and are never touched.
package normalize
