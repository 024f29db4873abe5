package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"regionorm/internal/diag"
	"regionorm/internal/source"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := cacheKey([32]byte{1}, testOptions())
	var miss DiskPayload
	if ok, err := c.Get(key, &miss); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}
	in := &DiskPayload{
		Schema:  diskCacheSchemaVersion,
		Path:    "a.rsig",
		Output:  "fn f();\n",
		Summary: Summary{Items: 1, Signatures: 1},
		Diagnostics: []CachedDiagnostic{{
			Severity: uint8(diag.SevWarning), Code: uint16(diag.NrmUnresolvedOutputRegion),
			Message: "m", Start: 1, End: 2, Notes: []CachedNote{{Start: 0, End: 1, Msg: "n"}},
		}},
	}
	if err := c.Put(key, in); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	ok, err := c.Get(key, &out)
	if !ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if diff := cmp.Diff(in, &out); diff != "" {
		t.Errorf("(-put +get):\n%s", diff)
	}

	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := c.Get(key, &out); ok {
		t.Error("entry survived DropAll")
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("cache dir not recreated: %v", err)
	}
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := cacheKey([32]byte{2}, testOptions())
	if err := c.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion + 1}); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	if ok, err := c.Get(key, &out); ok || err != nil {
		t.Errorf("ok=%v err=%v, want a miss", ok, err)
	}
}

func TestCacheKeyCoversOptions(t *testing.T) {
	content := [32]byte{3}
	base := testOptions()
	keys := map[Digest]string{cacheKey(content, base): "base"}
	variants := map[string]func(*Options){
		"prefix":  func(o *Options) { o.Normalize.SignaturePrefix = "r" },
		"warn":    func(o *Options) { o.WarnUnresolved = false },
		"explain": func(o *Options) { o.Explain = true },
		"max":     func(o *Options) { o.MaxDiagnostics = 7 },
	}
	for name, mutate := range variants {
		o := base
		mutate(&o)
		k := cacheKey(content, o)
		if prev, dup := keys[k]; dup {
			t.Errorf("%s collides with %s", name, prev)
		}
		keys[k] = name
	}
	if cacheKey(content, base) != cacheKey(content, testOptions()) {
		t.Error("cacheKey is not deterministic")
	}
}

func TestCacheKeyPrefixBoundary(t *testing.T) {
	a, b := testOptions(), testOptions()
	a.Normalize.HeaderPrefix, a.Normalize.SignaturePrefix = "ab", "c"
	b.Normalize.HeaderPrefix, b.Normalize.SignaturePrefix = "a", "bc"
	if cacheKey([32]byte{4}, a) == cacheKey([32]byte{4}, b) {
		t.Error("prefixes are not length-delimited in the key")
	}
	neg := testOptions()
	neg.MaxDiagnostics = -3
	if cacheKey([32]byte{4}, neg) != cacheKey([32]byte{4}, Options{Normalize: neg.Normalize, WarnUnresolved: true}) {
		t.Error("non-positive limits must hash like the default")
	}
}

func TestNormalizeFileUsesCache(t *testing.T) {
	root := writeTree(t, map[string]string{"a.rsig": "fn f(x: &u8, y: &u8) -> &u8;\n"})
	path := filepath.Join(root, "a.rsig")
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := testOptions()
	opts.Cache = cache

	_, first, err := NormalizeFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	fs2, second, err := NormalizeFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("cached = %v, %v", first.Cached, second.Cached)
	}
	if first.Output != second.Output || first.Summary != second.Summary {
		t.Errorf("cache hit differs: %q vs %q", first.Output, second.Output)
	}
	if diff := cmp.Diff(first.Bag.Items(), second.Bag.Items()); diff != "" {
		t.Errorf("diagnostics (-fresh +cached):\n%s", diff)
	}
	d := second.Bag.Items()[0]
	if got := fs2.Get(d.Primary.File).Text(d.Primary); got != "&u8" {
		t.Errorf("cached span covers %q", got)
	}
	if d.Primary.File != source.FileID(0) {
		t.Errorf("cached span file = %d", d.Primary.File)
	}
}
