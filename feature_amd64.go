//go:build amd64

package hwtopo

import "golang.org/x/sys/cpu"

// archVendorModelFeatures queries golang.org/x/sys/cpu for ISA feature
// flags. Vendor and brand strings require a raw CPUID leaf-0 / leaf
// 0x80000002-4 query that golang.org/x/sys/cpu does not expose; those
// two fields are left zero so the /proc/cpuinfo fallback in
// detectVendorModelFeatures always supplies them on Linux, matching
// spec.md §4.2's fallback contract.
func archVendorModelFeatures() (Vendor, string, FeatureSet) {
	var fs FeatureSet

	// SSE, SSE2, and MMX are part of the amd64 baseline ISA.
	fs.set(FeatureMMX)
	fs.set(FeatureSSE)
	fs.set(FeatureSSE2)

	fs.setIf(cpu.X86.HasSSE3, FeatureSSE3)
	fs.setIf(cpu.X86.HasSSSE3, FeatureSSSE3)
	fs.setIf(cpu.X86.HasSSE41, FeatureSSE41)
	fs.setIf(cpu.X86.HasSSE42, FeatureSSE42)
	fs.setIf(cpu.X86.HasFMA, FeatureFMA3)
	fs.setIf(cpu.X86.HasAVX, FeatureAVX)
	fs.setIf(cpu.X86.HasAVX2, FeatureAVX2)
	fs.setIf(cpu.X86.HasAVX512F, FeatureAVX512F)
	fs.setIf(cpu.X86.HasAVX512BW, FeatureAVX512BW)
	fs.setIf(cpu.X86.HasAVX512CD, FeatureAVX512CD)
	fs.setIf(cpu.X86.HasAVX512DQ, FeatureAVX512DQ)
	fs.setIf(cpu.X86.HasAVX512VL, FeatureAVX512VL)
	fs.setIf(cpu.X86.HasAES, FeatureAES)

	// golang.org/x/sys/cpu exposes no x86 SHA-NI or standalone CRC32
	// flags (CRC32 is folded into HasSSE42, which is already recorded
	// above); FeatureSHA and FeatureCRC32 are left to the
	// /proc/cpuinfo "flags" fallback on Linux.

	return Vendor{}, "", fs
}
