package trie

import (
	"sort"
	"testing"
)

func TestCountsAndPrefixes(t *testing.T) {
	tr := New()
	for _, word := range []string{"pass", "pass", "pass1", "pass2", "pa", "other"} {
		tr.Insert(word)
	}

	if got := tr.StandaloneCount("pass"); got != 2 {
		t.Fatalf("expected standalone 2, got %d", got)
	}
	if got := tr.CountWordsWithPrefix("pass"); got != 4 {
		t.Fatalf("expected 4 words with prefix, got %d", got)
	}
	if got := tr.CountWordsWithPrefix("missing"); got != 0 {
		t.Fatalf("expected 0 for absent prefix, got %d", got)
	}
	if got := tr.StandaloneCount("pa"); got != 1 {
		t.Fatalf("expected standalone 1 for pa, got %d", got)
	}
}

func TestFollowingChars(t *testing.T) {
	tr := New()
	for _, word := range []string{"pass", "pass1", "pass1", "pass2", "passa"} {
		tr.Insert(word)
	}

	following := tr.FollowingChars("pass")
	if len(following) != 3 {
		t.Fatalf("expected 3 following chars, got %v", following)
	}
	if following['1'] != 2 || following['2'] != 1 || following['a'] != 1 {
		t.Fatalf("unexpected following counts: %v", following)
	}
	if got := tr.FollowingChars("zz"); len(got) != 0 {
		t.Fatalf("expected empty map for absent prefix, got %v", got)
	}
}

func TestHighStandalone(t *testing.T) {
	tr := New()
	for i := 0; i < 3; i++ {
		tr.Insert("abc")
	}
	tr.Insert("ab")
	tr.Insert("xyz")

	prefixes := tr.HighStandalone(2)
	if len(prefixes) != 1 || prefixes[0] != "abc" {
		t.Fatalf("unexpected prefixes: %v", prefixes)
	}

	all := tr.HighStandalone(0)
	sort.Strings(all)
	if len(all) != 3 {
		t.Fatalf("expected every inserted word above 0, got %v", all)
	}
}

func TestMultiByteRunes(t *testing.T) {
	tr := New()
	tr.Insert("é1")
	tr.Insert("é2")

	following := tr.FollowingChars("é")
	if following['1'] != 1 || following['2'] != 1 {
		t.Fatalf("unexpected following counts: %v", following)
	}
}
