//go:build windows && amd64

package hwtopo

func seedAARCH64Vendor(vendor Vendor) Vendor {
	return vendor
}
