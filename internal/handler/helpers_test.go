package handler

import "testing"

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit int
		def   int
		want  int
	}{
		{0, 50, 50},
		{-5, 50, 50},
		{25, 50, 25},
		{500, 100, 500},
		{10000, 100, 500},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.limit, tt.def); got != tt.want {
			t.Fatalf("clampLimit(%d, %d)=%d want=%d", tt.limit, tt.def, got, tt.want)
		}
	}
}

// Meta must reflect the limit the store applies, never a raw oversized ask.
func TestPaginationMeta_HasNext(t *testing.T) {
	meta := paginationMeta(clampLimit(10000, 100), 0, 600)
	if meta["limit"] != 500 {
		t.Fatalf("limit=%v want=500", meta["limit"])
	}
	if meta["has_next"] != true {
		t.Fatalf("has_next=%v want=true (500 of 600 served)", meta["has_next"])
	}

	meta = paginationMeta(50, 50, 100)
	if meta["has_next"] != false {
		t.Fatalf("has_next=%v want=false at final page", meta["has_next"])
	}
}
