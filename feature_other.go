//go:build !amd64 && !arm64

package hwtopo

// archVendorModelFeatures has no golang.org/x/sys/cpu ISA table for this
// architecture; the FeatureSet stays empty.
func archVendorModelFeatures() (Vendor, string, FeatureSet) {
	return Vendor{}, "", FeatureSet{}
}
