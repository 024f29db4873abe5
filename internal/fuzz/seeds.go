package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// inlineSeeds cover the shapes that have been troublesome in the parser and
// the normalizer before testdata existed.
var inlineSeeds = []string{
	"",
	"fn f(x: &u8) -> &u8;",
	"fn f(x: &u8, y: &u8) -> &u8;",
	"impl Foo<'_> { fn get(&self) -> &'_ u8; }",
	"impl<'a> Tr<'a> for Foo<'_, &u8> {}",
	"fn f(&&x: &&u8) -> &&u8;",
	"fn f(x: [&u8; { fn g(y: &u8) -> &u8; 1 }]) -> &u8;",
	"fn f(g: impl FnOnce(&u8) -> &u8) -> &dyn Tr;",
	"trait T { fn f(self: &'_ Self) -> &Self; }",
	"impl Foo { fn f(&self",
	"fn f<'a,>(x: &'a u8,) -> &'a u8 where 'a: 'a;",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.rsig файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rsig" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
