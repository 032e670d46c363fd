package hwtopo

import "testing"

func TestVendorFromX86String(t *testing.T) {
	cases := []struct {
		raw  string
		want Vendor
	}{
		{"GenuineIntel", VendorIntel},
		{"AuthenticAMD", VendorAMD},
		{"", VendorUnknown},
	}
	for _, tc := range cases {
		if got := vendorFromX86String(tc.raw); got.String() != tc.want.String() {
			t.Errorf("vendorFromX86String(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestVendorFromX86StringUnrecognisedBecomesOther(t *testing.T) {
	got := vendorFromX86String("SomeWeirdVendor")
	if !got.IsOther() {
		t.Fatal("expected unrecognised vendor string to become Other")
	}
	if got.Raw() != "SomeWeirdVendor" {
		t.Fatalf("Raw() = %q, want %q", got.Raw(), "SomeWeirdVendor")
	}
	if got.String() != "SomeWeirdVendor" {
		t.Fatalf("String() = %q, want the raw string preserved verbatim", got.String())
	}
}

func TestVendorFromARMImplementer(t *testing.T) {
	cases := []struct {
		code uint64
		want Vendor
	}{
		{0x41, VendorArm},
		{0x61, VendorApple},
	}
	for _, tc := range cases {
		if got := vendorFromARMImplementer(tc.code); got.String() != tc.want.String() {
			t.Errorf("vendorFromARMImplementer(%#x) = %s, want %s", tc.code, got, tc.want)
		}
	}
}

func TestVendorFromARMImplementerKnownButUnmappedCarriesName(t *testing.T) {
	got := vendorFromARMImplementer(0x51)
	if !got.IsOther() {
		t.Fatal("expected Qualcomm (0x51) to surface via Other, no dedicated Vendor constant")
	}
	if got.String() != "Qualcomm" {
		t.Fatalf("String() = %q, want %q", got.String(), "Qualcomm")
	}
}

func TestVendorFromARMImplementerUnknownCodeHex(t *testing.T) {
	got := vendorFromARMImplementer(0x99)
	if !got.IsOther() {
		t.Fatal("expected unknown implementer code to become Other")
	}
	if got.String() != "0x99" {
		t.Fatalf("String() = %q, want %q", got.String(), "0x99")
	}
}
