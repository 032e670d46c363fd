//go:build windows && arm64

package hwtopo

// seedAARCH64Vendor seeds vendor Arm before the registry fallback pass,
// per spec.md §4.3 ("On aarch64 seed with vendor Arm and NEON before the
// registry pass"). NEON itself is already set unconditionally by
// archVendorModelFeatures on arm64.
func seedAARCH64Vendor(vendor Vendor) Vendor {
	if vendor.id == vendorUnknown {
		return VendorArm
	}
	return vendor
}
