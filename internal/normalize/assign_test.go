package normalize_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"regionorm/internal/ast"
	"regionorm/internal/normalize"
)

func TestAssignRegionsInsertsInIndexOrder(t *testing.T) {
	f := parse(t, "fn f<'a, T>(x: &u8, y: &'_ T);")
	sig := signatures(f)[0]
	var nodes []ast.Node
	for _, arg := range sig.Inputs {
		nodes = append(nodes, arg)
	}
	got := normalize.AssignRegions("r", sig.Generics, nodes...)
	if diff := cmp.Diff([]string{"r0", "r1"}, got); diff != "" {
		t.Errorf("generated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"r0", "r1", "a"}, sig.Generics.Lifetimes()); diff != "" {
		t.Errorf("declared (-want +got):\n%s", diff)
	}
	if got := ast.GenericsString(sig.Generics); got != "<'r0, 'r1, 'a, T>" {
		t.Errorf("generics = %s", got)
	}
}

func TestAssignRegionsReceiverSharesRegion(t *testing.T) {
	f := parse(t, "impl S { fn f(&mut self); }")
	sig := signatures(f)[0]
	got := normalize.AssignRegions("__f", sig.Generics, sig.Inputs[0])
	if diff := cmp.Diff([]string{"__f0"}, got); diff != "" {
		t.Fatalf("generated (-want +got):\n%s", diff)
	}
	r := sig.Receiver()
	ref, ok := r.Type.Ref()
	if !ok {
		t.Fatalf("receiver type is %s", ast.TypeString(r.Type))
	}
	if r.Lifetime == nil || ref.Lifetime == nil || r.Lifetime.Name != ref.Lifetime.Name {
		t.Errorf("receiver %v and its type %v differ", r.Lifetime, ref.Lifetime)
	}
	if r.Lifetime == ref.Lifetime {
		t.Errorf("receiver and type share one *Lifetime")
	}
}

func TestAssignRegionsValueReceiver(t *testing.T) {
	f := parse(t, "impl S { fn f(mut self); }")
	sig := signatures(f)[0]
	if got := normalize.AssignRegions("__f", sig.Generics, sig.Inputs[0]); len(got) != 0 {
		t.Errorf("generated %v for a value receiver", got)
	}
}

func TestCollectRegion(t *testing.T) {
	tests := []struct {
		src    string
		state  normalize.CollectState
		region string
	}{
		{"fn f();", normalize.CollectNone, ""},
		{"fn f(x: u8, y: Vec<T>);", normalize.CollectNone, ""},
		{"fn f(x: &'a u8, y: u8);", normalize.CollectSingle, "a"},
		{"fn f(x: Foo<'b>);", normalize.CollectSingle, "b"},
		{"fn f(x: &'a u8, y: &'a u8);", normalize.CollectMultiple, ""},
		{"fn f(x: &'a Foo<'b>);", normalize.CollectMultiple, ""},
		{"fn f(x: fn(&'a u8), y: &'b u8);", normalize.CollectSingle, "b"},
		{"fn f(x: Box<dyn Fn(&'a u8)>);", normalize.CollectNone, ""},
		{"fn f(x: &u8);", normalize.CollectNone, ""},
		{"fn f(x: Box<dyn for<'a> Tr<'a>>);", normalize.CollectMultiple, ""},
		{"impl S { fn f(&'a self, x: u8); }", normalize.CollectNone, ""},
	}
	for _, tt := range tests {
		sig := signatures(parse(t, tt.src))[0]
		region, state := normalize.CollectRegion(sig.Inputs)
		if state != tt.state {
			t.Errorf("%s: state = %s, want %s", tt.src, state, tt.state)
		}
		got := ""
		if region != nil {
			got = region.Name
		}
		if got != tt.region {
			t.Errorf("%s: region = %q, want %q", tt.src, got, tt.region)
		}
	}
}

func TestElideOutput(t *testing.T) {
	tests := []struct {
		src    string
		want   string
		filled int
	}{
		{"fn f() -> &u8;", "&'r u8", 1},
		{"fn f() -> &&u8;", "&'r &'r u8", 2},
		{"fn f() -> Foo<'_, &'a u8>;", "Foo<'r, &'a u8>", 1},
		{"fn f() -> (fn(&u8) -> &u8, &u8);", "(fn(&u8) -> &u8, &'r u8)", 1},
		{"fn f() -> Box<dyn Tr + '_>;", "Box<dyn Tr + 'r>", 1},
		{"fn f() -> u8;", "u8", 0},
	}
	for _, tt := range tests {
		sig := signatures(parse(t, tt.src))[0]
		filled := normalize.ElideOutput(ast.NewLifetime("r"), sig.Output)
		if got := ast.TypeString(sig.Output); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.src, got, tt.want)
		}
		if filled != tt.filled {
			t.Errorf("%s: filled %d, want %d", tt.src, filled, tt.filled)
		}
	}
}

func TestRuleString(t *testing.T) {
	for rule, want := range map[normalize.Rule]string{
		normalize.RuleNoOutput:    "no-output",
		normalize.RuleReceiver:    "receiver",
		normalize.RuleSingleInput: "single-input",
		normalize.RuleAmbiguous:   "ambiguous",
	} {
		if got := rule.String(); got != want {
			t.Errorf("%d: %s, want %s", rule, got, want)
		}
	}
}
