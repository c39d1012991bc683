package pagination

import "testing"

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("NormalizeLimit(0) = %d", got)
	}
	if got := NormalizeLimit(1000); got != MaxLimit {
		t.Fatalf("NormalizeLimit(1000) = %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("NormalizeLimit(10) = %d", got)
	}
}

func TestNormalizeOffset(t *testing.T) {
	p := Normalize(Params{Limit: 50, Offset: -3})
	if p.Offset != 0 || p.Limit != 50 {
		t.Fatalf("Normalize = %+v", p)
	}
}

func TestHasMore(t *testing.T) {
	p := Params{Limit: 25, Offset: 0}
	if !HasMore(26, p) {
		t.Fatal("expected more rows past first page")
	}
	if HasMore(25, p) {
		t.Fatal("exact page should not report more")
	}
	if HasMore(10, Params{Limit: 25, Offset: 25}) {
		t.Fatal("offset past total should not report more")
	}
}
