package token

import "testing"

func TestKindStringCoversAllKinds(t *testing.T) {
	for k := Invalid; k <= Underscore; k++ {
		if k.String() == "Unknown" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if Kind(250).String() != "Unknown" {
		t.Error("out of range kind should be Unknown")
	}
}

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"impl", KwImpl, true},
		{"self", KwSelf, true},
		{"Self", Invalid, false},
		{"where", KwWhere, true},
		{"static", Invalid, false},
	}
	for _, tt := range tests {
		got, ok := LookupKeyword(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("LookupKeyword(%q) = %v,%v; want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	if !(Token{Kind: KwDyn}).IsKeyword() || (Token{Kind: Ident}).IsKeyword() {
		t.Error("IsKeyword mismatch")
	}
	if !(Token{Kind: Arrow}).IsPunct() || (Token{Kind: Lifetime}).IsPunct() {
		t.Error("IsPunct mismatch")
	}
	if !(Token{Kind: Lifetime, Text: "'_"}).IsAnonymousLifetime() {
		t.Error("'_ should be anonymous")
	}
	if (Token{Kind: Lifetime, Text: "'a"}).IsAnonymousLifetime() {
		t.Error("'a is not anonymous")
	}
}
