package repository

import "testing"

func TestParseLeadingInt(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"0007", 7, true},
		{"  12", 12, true},
		{"12abc", 12, true},
		{"+3", 3, true},
		{"-4", -4, true},
		{"abc", 0, false},
		{"", 0, false},
		{"-", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseLeadingInt(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseLeadingInt(%q) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
