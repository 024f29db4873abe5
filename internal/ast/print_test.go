package ast

import (
	"strings"
	"testing"

	"regionorm/internal/source"
)

var emptySpan source.Span

func TestTypeString(t *testing.T) {
	u8 := func() *Type { return NewPathType("u8", emptySpan) }
	tests := []struct {
		name string
		ty   *Type
		want string
	}{
		{"ref omitted", NewRef(nil, false, u8()), "&u8"},
		{"ref named mut", NewRef(lt("a"), true, u8()), "&'a mut u8"},
		{"path args", pathWithLifetimes("Foo", "_", "b"), "Foo<'_, 'b>"},
		{"slice", &Type{Kind: TypeSlice, Data: &SliceData{Elem: u8()}}, "[u8]"},
		{"array", &Type{Kind: TypeArray, Data: &ArrayData{Elem: u8(), Len: &Expr{Kind: ExprLit, Text: "4"}}}, "[u8; 4]"},
		{"unit", &Type{Kind: TypeTuple, Data: &TupleData{}}, "()"},
		{"one tuple", &Type{Kind: TypeTuple, Data: &TupleData{Elems: []*Type{u8()}}}, "(u8,)"},
		{"ptr", &Type{Kind: TypePtr, Data: &PtrData{Elem: u8()}}, "*const u8"},
		{"never", &Type{Kind: TypeNever}, "!"},
		{"bare fn", &Type{Kind: TypeBareFn, Data: &BareFnData{
			ForLifetimes: []*GenericParam{NewLifetimeParam("x")},
			Extern:       true,
			ABI:          `"C"`,
			Params:       []*BareFnParam{{Type: NewRef(lt("x"), false, u8())}},
			Output:       NewRef(lt("x"), false, u8()),
		}}, `for<'x> extern "C" fn(&'x u8) -> &'x u8`},
		{"dyn", &Type{Kind: TypeTraitObject, Data: &BoundsData{Bounds: []*Bound{
			{Kind: BoundTrait, Trait: &Path{Segments: []*PathSegment{{Name: "Fn", Paren: &ParenArgs{
				Inputs: []*Type{NewRef(nil, false, u8())},
				Output: NewRef(nil, false, u8()),
			}}}}},
			{Kind: BoundLifetime, Lifetime: lt("a")},
		}}}, "dyn Fn(&u8) -> &u8 + 'a"},
	}
	for _, tt := range tests {
		if got := TypeString(tt.ty); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestFormatImpl(t *testing.T) {
	gen := &Generics{Params: []*GenericParam{
		NewLifetimeParam("__i0"),
		{Kind: GenericType, Name: "T", Bounds: []*Bound{{Kind: BoundTrait, Trait: &Path{Segments: []*PathSegment{{Name: "Clone"}}}}}},
	}}
	method := &Item{Kind: ItemFn, Data: &FnData{
		Sig: &Signature{
			Name:     "get",
			Generics: &Generics{Params: []*GenericParam{NewLifetimeParam("__f0")}},
			Inputs: []*FnArg{{Kind: ArgReceiver, Receiver: &Receiver{
				Form:     ReceiverRef,
				Lifetime: lt("__f0"),
				Type:     NewRef(lt("__f0"), false, NewPathType("Self", emptySpan)),
			}}},
			Output: NewRef(lt("__f0"), false, NewPathType("T", emptySpan)),
		},
		Body: &Body{Text: "{ &self.0 }"},
	}}
	decl := &Item{Kind: ItemFn, Data: &FnData{Sig: &Signature{Name: "len", Inputs: []*FnArg{
		{Kind: ArgReceiver, Receiver: &Receiver{Form: ReceiverValue, Type: NewPathType("Self", emptySpan)}},
	}, Output: NewPathType("usize", emptySpan)}}}
	file := &File{Items: []*Item{{
		Kind: ItemImpl,
		Pub:  false,
		Data: &ImplData{Generics: gen, SelfTy: pathWithLifetimes("Foo", "__i0"), Items: []*Item{method, decl}},
	}}}

	want := strings.Join([]string{
		"impl<'__i0, T: Clone> Foo<'__i0> {",
		"    fn get<'__f0>(&'__f0 self) -> &'__f0 T { &self.0 }",
		"    fn len(self) -> usize;",
		"}",
		"",
	}, "\n")
	if got := Format(file); got != want {
		t.Fatalf("Expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestFormatWhereAndConst(t *testing.T) {
	g := &Generics{
		Params: []*GenericParam{{Kind: GenericType, Name: "T"}},
		Where: []*WherePredicate{
			{Type: NewPathType("T", emptySpan), Bounds: []*Bound{{Kind: BoundTrait, Maybe: true, Trait: &Path{Segments: []*PathSegment{{Name: "Sized"}}}}}},
			{Lifetime: lt("a"), LifetimeBounds: []*Lifetime{lt("b")}},
		},
	}
	fn := &Item{Kind: ItemFn, Pub: true, Data: &FnData{Sig: &Signature{Name: "f", Generics: g}}}
	if got, want := ItemString(fn), "pub fn f<T>() where T: ?Sized, 'a: 'b;"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	c := &Item{Kind: ItemConst, Data: &ConstData{Name: "N", Type: NewPathType("usize", emptySpan), Value: "3"}}
	if got, want := ItemString(c), "const N: usize = 3;"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestGenericsInsert(t *testing.T) {
	g := &Generics{Params: []*GenericParam{NewLifetimeParam("a"), {Kind: GenericType, Name: "T"}}}
	g.Insert(0, NewLifetimeParam("__f0"))
	g.Insert(1, NewLifetimeParam("__f1"))
	g.Insert(10, NewLifetimeParam("z"))
	if got, want := GenericsString(g), "<'__f0, '__f1, 'a, T, 'z>"; got != want {
		t.Fatalf("Expected %q, got %q", want, got)
	}
	if !g.HasLifetime("__f1") || g.HasLifetime("T") {
		t.Fatalf("HasLifetime mismatch for %v", g.Lifetimes())
	}
}

func TestFormatComments(t *testing.T) {
	u8ref := func() *Type { return NewRef(nil, false, NewPathType("u8", emptySpan)) }
	get := &Item{Kind: ItemFn, Comments: []string{"// member note"}, Trailing: "// hot path", Data: &FnData{Sig: &Signature{
		Name:   "get",
		Inputs: []*FnArg{{Kind: ArgReceiver, Receiver: &Receiver{Form: ReceiverRef, Type: u8ref()}}},
		Output: u8ref(),
	}}}
	file := &File{
		Items: []*Item{
			{
				Kind:     ItemFn,
				Comments: []string{"// header comment", "", "/// doc"},
				Trailing: "// trailing",
				Data:     &FnData{Sig: &Signature{Name: "f", Inputs: []*FnArg{{Kind: ArgTyped, Typed: &TypedArg{Pat: &Pat{Name: "x"}, Type: u8ref()}}}, Output: u8ref()}},
			},
			{
				Kind: ItemImpl,
				Data: &ImplData{Generics: &Generics{}, SelfTy: NewPathType("Foo", emptySpan), Items: []*Item{get}, Tail: []string{"// closing"}},
			},
			{
				Kind: ItemTrait,
				Data: &TraitData{Name: "Empty", Generics: &Generics{}, Tail: []string{"/* nothing yet */"}},
			},
		},
		Comments: []string{"// end of file"},
	}

	want := strings.Join([]string{
		"// header comment",
		"",
		"/// doc",
		"fn f(x: &u8) -> &u8; // trailing",
		"",
		"impl Foo {",
		"    // member note",
		"    fn get(&self) -> &u8; // hot path",
		"    // closing",
		"}",
		"",
		"trait Empty {",
		"    /* nothing yet */",
		"}",
		"",
		"// end of file",
		"",
	}, "\n")
	if got := Format(file); got != want {
		t.Fatalf("Expected:\n%s\ngot:\n%s", want, got)
	}
}
