//go:build linux

package hwtopo

import "testing"

func TestParseCPUListAccepts(t *testing.T) {
	cases := []struct {
		in   string
		want []uint32
	}{
		{"0", []uint32{0}},
		{"0,2,4", []uint32{0, 2, 4}},
		{"0-3", []uint32{0, 1, 2, 3}},
		{"0-1,4,6-7", []uint32{0, 1, 4, 6, 7}},
		{"", nil},
	}
	for _, tc := range cases {
		got, err := parseCPUList(tc.in)
		if err != nil {
			t.Fatalf("parseCPUList(%q) = error %v, want nil", tc.in, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("parseCPUList(%q) = %v, want %v", tc.in, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("parseCPUList(%q) = %v, want %v", tc.in, got, tc.want)
			}
		}
	}
}

func TestParseCPUListRejects(t *testing.T) {
	for _, in := range []string{"1-0", "a"} {
		if _, err := parseCPUList(in); err == nil {
			t.Errorf("parseCPUList(%q) = nil error, want an error", in)
		}
	}
}

func TestParseCacheSize(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"512K", 524288},
		{"32", 32},
		{"32K", 32768},
	}
	for _, tc := range cases {
		got, ok := parseCacheSize(tc.in)
		if !ok {
			t.Fatalf("parseCacheSize(%q) failed", tc.in)
		}
		if got != tc.want {
			t.Fatalf("parseCacheSize(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseCacheSizeRejectsEmpty(t *testing.T) {
	if _, ok := parseCacheSize(""); ok {
		t.Fatal("parseCacheSize(\"\") should fail")
	}
}
