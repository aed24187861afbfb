package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		s    string
		def  int
		want int
	}{
		{"", 10, 10},
		{"42", 0, 42},
		{"-13", 1, -13},
		{"0012", 99, 12},
		{"x", 5, 5},
		{" 42", 7, 7},
		{"999999999999999999999999", -1, -1},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d; want %d", tc.s, tc.def, got, tc.want)
		}
	}
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		page, size       string
		wantPage, wantSz int
	}{
		{"", "", 1, 20},
		{"0", "0", 1, 1},
		{"-3", "x", 1, 20},
		{"4", "500", 4, 100},
		{"2", "15", 2, 15},
	}
	for _, tc := range cases {
		p, s := PageParams(tc.page, tc.size, 20, 100)
		if p != tc.wantPage || s != tc.wantSz {
			t.Fatalf("PageParams(%q, %q) = %d, %d; want %d, %d", tc.page, tc.size, p, s, tc.wantPage, tc.wantSz)
		}
	}
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes ", "on", "y"} {
		if !ParseBool(v) {
			t.Fatalf("ParseBool(%q) = false", v)
		}
	}
	for _, v := range []string{"", "0", "false", "off", "nope"} {
		if ParseBool(v) {
			t.Fatalf("ParseBool(%q) = true", v)
		}
	}
}
