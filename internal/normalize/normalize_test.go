package normalize_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"regionorm/internal/ast"
	"regionorm/internal/normalize"
	"regionorm/internal/source"
	"regionorm/internal/trace"
)

func normalizeSource(t *testing.T, src string) (string, *normalize.Result) {
	t.Helper()
	f := parse(t, src)
	res := normalize.New(normalize.DefaultOptions()).NormalizeFile(f)
	return ast.Format(f), res
}

func TestNormalizeFile(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		want       string
		unresolved int
	}{
		{
			name: "single input",
			src:  "fn f(x: &u8) -> &u8;",
			want: "fn f<'__f0>(x: &'__f0 u8) -> &'__f0 u8;\n",
		},
		{
			name:       "two inputs stay ambiguous",
			src:        "fn f(x: &u8, y: &u8) -> &u8;",
			want:       "fn f<'__f0, '__f1>(x: &'__f0 u8, y: &'__f1 u8) -> &u8;\n",
			unresolved: 1,
		},
		{
			name:       "repeated named region counts twice",
			src:        "fn f<'a>(x: &'a u8, y: &'a u8) -> &u8;",
			want:       "fn f<'a>(x: &'a u8, y: &'a u8) -> &u8;\n",
			unresolved: 1,
		},
		{
			name: "static input",
			src:  "fn f(x: &'static u8) -> &u8;",
			want: "fn f(x: &'static u8) -> &'static u8;\n",
		},
		{
			name: "receiver wins",
			src:  "impl Foo { fn get(&self, k: &str) -> &V; }",
			want: "impl Foo {\n    fn get<'__f0, '__f1>(&'__f0 self, k: &'__f1 str) -> &'__f0 V;\n}\n",
		},
		{
			name: "anonymous mut receiver",
			src:  "impl Foo { fn f(&'_ mut self) -> &u8; }",
			want: "impl Foo {\n    fn f<'__f0>(&'__f0 mut self) -> &'__f0 u8;\n}\n",
		},
		{
			name: "named receiver kept",
			src:  "impl Foo { fn f<'a>(&'a self, x: &u8) -> &u8; }",
			want: "impl Foo {\n    fn f<'__f0, 'a>(&'a self, x: &'__f0 u8) -> &'a u8;\n}\n",
		},
		{
			name: "typed reference receiver",
			src:  "impl Foo { fn f(self: &Self, x: &u8) -> &u8; }",
			want: "impl Foo {\n    fn f<'__f0, '__f1>(self: &'__f0 Self, x: &'__f1 u8) -> &'__f0 u8;\n}\n",
		},
		{
			name: "value receiver falls back to inputs",
			src:  "impl Foo { fn f(self, x: &u8) -> &u8; }",
			want: "impl Foo {\n    fn f<'__f0>(self, x: &'__f0 u8) -> &'__f0 u8;\n}\n",
		},
		{
			name:       "boxed receiver with two inputs",
			src:        "impl Foo { fn f(self: Box<Self>, a: &u8, b: &u8) -> &u8; }",
			want:       "impl Foo {\n    fn f<'__f0, '__f1>(self: Box<Self>, a: &'__f0 u8, b: &'__f1 u8) -> &u8;\n}\n",
			unresolved: 1,
		},
		{
			name: "header self type",
			src:  "impl<T> Trait for Foo<'_, &T> {}",
			want: "impl<'__i0, '__i1, T> Trait for Foo<'__i0, &'__i1 T> {}\n",
		},
		{
			name: "anonymous output argument",
			src:  "fn f(x: &u8) -> Foo<'_>;",
			want: "fn f<'__f0>(x: &'__f0 u8) -> Foo<'__f0>;\n",
		},
		{
			name: "inner reference named first",
			src:  "fn f(x: & &u8);",
			want: "fn f<'__f0, '__f1>(x: &'__f1 &'__f0 u8);\n",
		},
		{
			name: "explicit anonymous before referent",
			src:  "fn f(x: &'_ Foo<'_>, y: &Foo<'_>);",
			want: "fn f<'__f0, '__f1, '__f2, '__f3>(x: &'__f0 Foo<'__f1>, y: &'__f3 Foo<'__f2>);\n",
		},
		{
			name:       "function pointers and callbacks are opaque",
			src:        "fn f(cb: fn(&u8) -> &u8, g: Box<dyn Fn(&u8) -> &u8>) -> &u8;",
			want:       "fn f(cb: fn(&u8) -> &u8, g: Box<dyn Fn(&u8) -> &u8>) -> &u8;\n",
			unresolved: 1,
		},
		{
			name:       "declared higher-ranked region counts",
			src:        "fn f(x: Box<dyn for<'a> Tr<'a>>) -> &u8;",
			want:       "fn f(x: Box<dyn for<'a> Tr<'a>>) -> &u8;\n",
			unresolved: 1,
		},
		{
			name:       "nested items untouched",
			src:        "fn f(a: [u8; { fn g(x: &u8) -> &u8; 3 }]) -> &u8;",
			want:       "fn f(a: [u8; { fn g(x: &u8) -> &u8; 3 }]) -> &u8;\n",
			unresolved: 1,
		},
		{
			name: "body kept verbatim",
			src:  "fn f(x: &u8) -> &u8 { let y: &u8 = x; y }",
			want: "fn f<'__f0>(x: &'__f0 u8) -> &'__f0 u8 { let y: &u8 = x; y }\n",
		},
		{
			name: "trait members",
			src:  "trait T { fn f(&self) -> &u8; const N: &str; }",
			want: "trait T {\n    fn f<'__f0>(&'__f0 self) -> &'__f0 u8;\n    const N: &str;\n}\n",
		},
		{
			name: "header and members number independently",
			src:  "impl Foo<'_> { fn f(&self) -> &u8; }",
			want: "impl<'__i0> Foo<'__i0> {\n    fn f<'__f0>(&'__f0 self) -> &'__f0 u8;\n}\n",
		},
		{
			name: "comments survive",
			src:  "// header comment\n/// doc\nfn f(x: &u8) -> &u8; // trailing\n",
			want: "// header comment\n/// doc\nfn f<'__f0>(x: &'__f0 u8) -> &'__f0 u8; // trailing\n",
		},
		{
			name: "member comments survive",
			src:  "impl Foo {\n    // member note\n    fn get(&self) -> &u8;\n}\n",
			want: "impl Foo {\n    // member note\n    fn get<'__f0>(&'__f0 self) -> &'__f0 u8;\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := normalizeSource(t, tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("normalized output mismatch (-want +got):\n%s", diff)
			}
			if len(res.Unresolved) != tt.unresolved {
				t.Errorf("unresolved = %d, want %d: %+v", len(res.Unresolved), tt.unresolved, res.Unresolved)
			}
		})
	}
}

func TestNormalizeReports(t *testing.T) {
	f := parse(t, "impl<T> S<'_, T> {\n    fn a(&self, x: &u8) -> &u8;\n    fn b(x: &u8) -> &u8;\n    fn c(x: &u8, y: &u8) -> &u8;\n    fn d(x: &u8);\n}\n")
	res := normalize.New(normalize.DefaultOptions()).NormalizeFile(f)

	wantHeaders := []normalize.HeaderReport{{SelfTy: "S<'__i0, T>", Generated: []string{"__i0"}}}
	if diff := cmp.Diff(wantHeaders, res.Headers, cmpopts.IgnoreFields(normalize.HeaderReport{}, "Span")); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}

	wantSigs := []normalize.SignatureReport{
		{Owner: "S<'__i0, T>", Name: "a", Generated: []string{"__f0", "__f1"}, Rule: normalize.RuleReceiver, Region: "__f0", Elided: 1},
		{Owner: "S<'__i0, T>", Name: "b", Generated: []string{"__f0"}, Rule: normalize.RuleSingleInput, Region: "__f0", Elided: 1, Collected: normalize.CollectSingle},
		{Owner: "S<'__i0, T>", Name: "c", Generated: []string{"__f0", "__f1"}, Rule: normalize.RuleAmbiguous, Collected: normalize.CollectMultiple},
		{Owner: "S<'__i0, T>", Name: "d", Generated: []string{"__f0"}, Rule: normalize.RuleNoOutput},
	}
	if diff := cmp.Diff(wantSigs, res.Signatures, cmpopts.IgnoreFields(normalize.SignatureReport{}, "Span")); diff != "" {
		t.Errorf("signatures mismatch (-want +got):\n%s", diff)
	}
	if got := res.Generated(); got != 7 {
		t.Errorf("Generated() = %d, want 7", got)
	}
}

func TestUnresolvedPositions(t *testing.T) {
	src := "fn f(x: &u8, y: &u8) -> (&u8, Foo<'_>);"
	f := parse(t, src)
	res := normalize.New(normalize.DefaultOptions()).NormalizeFile(f)
	if len(res.Unresolved) != 2 {
		t.Fatalf("unresolved = %+v, want 2 entries", res.Unresolved)
	}
	first, second := res.Unresolved[0], res.Unresolved[1]
	if first.Anonymous || !second.Anonymous {
		t.Errorf("anonymous flags = %v, %v; want false, true", first.Anonymous, second.Anonymous)
	}
	if got := src[first.Span.Start:first.Span.End]; got != "&u8" {
		t.Errorf("first span covers %q, want &u8", got)
	}
	if got := src[second.Span.Start:second.Span.End]; got != "'_" {
		t.Errorf("second span covers %q, want '_", got)
	}
	if first.Signature != "f" {
		t.Errorf("signature = %q", first.Signature)
	}
}

// Нормализация уже нормализованного текста ничего не меняет.
func TestNormalizeIdempotent(t *testing.T) {
	sources := []string{
		"fn f(x: &u8, y: &u8) -> &u8;",
		"impl<T> Trait for Foo<'_, &T> { fn get(&self, k: &str) -> &V; }",
		"fn f(x: &'_ Foo<'_>, cb: fn(&u8) -> &u8) -> Bar<'_>;",
		"trait T { fn f(self: &Self) -> &u8; }",
		"/// doc\nimpl Foo<'_> { // open\n    fn f(&self, /* x */ x: &u8) -> &u8; // f\n    // end\n}\n// eof",
	}
	for _, src := range sources {
		once, _ := normalizeSource(t, src)
		twice, res := normalizeSource(t, once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("%s: second pass changed output (-first +second):\n%s", src, diff)
		}
		if n := res.Generated(); n != 0 {
			t.Errorf("%s: second pass generated %d regions", src, n)
		}
	}
}

// Two independent runs over the same text produce the same tree.
func TestNormalizeDeterministic(t *testing.T) {
	src := "impl Foo<'_> { fn f(&self, x: &[&u8], y: Option<&'_ str>) -> Vec<&u8>; }"
	a := parse(t, src)
	b := parse(t, src)
	n := normalize.New(normalize.DefaultOptions())
	n.NormalizeFile(a)
	n.NormalizeFile(b)
	if diff := cmp.Diff(a, b, cmpopts.IgnoreTypes(source.Span{})); diff != "" {
		t.Errorf("trees differ (-a +b):\n%s", diff)
	}
}

func TestNoAnonymousInputsRemain(t *testing.T) {
	src := "impl X for Y<'_> {\n    fn a(&self, b: &&u8, c: Foo<'_, &str>, d: &mut [&'_ u8]);\n    fn e(self: Pin<&mut Self>, f: impl Fn(&u8) -> &u8);\n}\n"
	f := parse(t, src)
	normalize.New(normalize.DefaultOptions()).NormalizeFile(f)

	for _, sig := range signatures(f) {
		declared := map[string]int{}
		for _, name := range sig.Generics.Lifetimes() {
			declared[name]++
		}
		for _, arg := range sig.Inputs {
			ast.Inspect(arg, func(n ast.Node) bool {
				if ast.OpensInnerScope(n) {
					return false
				}
				switch n := n.(type) {
				case *ast.Lifetime:
					if n.IsAnonymous() {
						t.Errorf("%s: anonymous region survived", sig.Name)
					} else if n.Name != ast.StaticName && declared[n.Name] != 1 {
						t.Errorf("%s: region %s declared %d times", sig.Name, n.Name, declared[n.Name])
					}
				case *ast.Type:
					if ref, ok := n.Ref(); ok && ref.Lifetime == nil {
						t.Errorf("%s: reference without region", sig.Name)
					}
				}
				return true
			})
		}
	}
}

func TestCustomPrefixes(t *testing.T) {
	f := parse(t, "impl Foo<'_> { fn f(&self) -> &u8; }")
	normalize.New(normalize.Options{HeaderPrefix: "h", SignaturePrefix: "s"}).NormalizeFile(f)
	want := "impl<'h0> Foo<'h0> {\n    fn f<'s0>(&'s0 self) -> &'s0 u8;\n}\n"
	if diff := cmp.Diff(want, ast.Format(f)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEmptyPrefixesUseDefaults(t *testing.T) {
	n := normalize.New(normalize.Options{})
	if diff := cmp.Diff(normalize.DefaultOptions(), n.Options()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestNormalizeTracesSignatures(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	f := parse(t, "impl Foo<'_> { fn f(&self) -> &u8; }")
	normalize.New(normalize.DefaultOptions()).WithTracer(ring, 7).NormalizeFile(f)

	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.ParentID != 7 || ev.Scope != trace.ScopeNode {
			t.Errorf("unexpected event %+v", ev)
		}
		names = append(names, ev.Name)
	}
	if diff := cmp.Diff([]string{"impl-header", "signature"}, names); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}
