package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"regionorm/internal/lexer"
	"regionorm/internal/source"
)

func lexAll(t *testing.T, src string) (*source.FileSet, *lexer.Lexer) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("tok.rsig", []byte(src))
	return fs, lexer.New(fs.Get(id), lexer.Options{KeepTrivia: true})
}

func TestFormatTokensPretty(t *testing.T) {
	fs, lx := lexAll(t, "// c\nfn f(&'_ self)")
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, lx.All(), fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, part := range []string{`"'_"`, `LineComment "// c"`, "at 2:1-2:3", "EOF"} {
		if !strings.Contains(out, part) {
			t.Errorf("missing %q in:\n%s", part, out)
		}
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs, lx := lexAll(t, "fn f()")
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, lx.All(), fs); err != nil {
		t.Fatal(err)
	}
	var toks []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &toks); err != nil {
		t.Fatal(err)
	}
	if len(toks) != 5 {
		t.Fatalf("got %d tokens: %+v", len(toks), toks)
	}
	if toks[1].Text != "f" || toks[1].Col != 4 || toks[1].Leading[0] != "Space" {
		t.Errorf("second token = %+v", toks[1])
	}
}
