//go:build arm64

package hwtopo

import "golang.org/x/sys/cpu"

// archVendorModelFeatures queries golang.org/x/sys/cpu for aarch64
// feature flags. On Linux the zero vendor always triggers the
// /proc/cpuinfo fallback (spec.md §4.2: "on aarch64 unconditionally"),
// which resolves the vendor from the "CPU implementer" field and the
// model from a "model name" line when one is present, so vendor/model
// are left zero here.
func archVendorModelFeatures() (Vendor, string, FeatureSet) {
	var fs FeatureSet

	// Advanced SIMD is mandatory on aarch64.
	fs.set(FeatureNEON)

	fs.setIf(cpu.ARM64.HasSVE, FeatureSVE)
	fs.setIf(cpu.ARM64.HasAES, FeatureAES)
	fs.setIf(cpu.ARM64.HasSHA1 || cpu.ARM64.HasSHA2 || cpu.ARM64.HasSHA3 || cpu.ARM64.HasSHA512, FeatureSHA)
	fs.setIf(cpu.ARM64.HasCRC32, FeatureCRC32)

	return Vendor{}, "", fs
}
