// Package hwtopo exposes a process-wide view of the host CPU's physical
// topology: sockets, physical cores, SMT siblings, P/E-core classes, and
// per-level caches, plus operations for pinning and prioritizing the
// calling thread against that topology.
//
// Detection happens once per process, lazily, on first call to any public
// accessor; the result is cached for the life of the process. Three
// platform back-ends (Linux, Windows, macOS) reconstruct the same
// Topology shape from very different OS primitives: sysfs on Linux,
// GetLogicalProcessorInformationEx on Windows, and the sysctl hw.perflevelN
// hierarchy on macOS.
package hwtopo

//go:generate go run golang.org/x/tools/cmd/stringer -type vendorID -linecomment -output vendor_string.go
//go:generate go run golang.org/x/tools/cmd/stringer -type CoreClass -output core_string.go
//go:generate go run golang.org/x/tools/cmd/stringer -type CacheLevel -output cachelevel_string.go
//go:generate go run golang.org/x/tools/cmd/stringer -type CacheKind -output cachekind_string.go
//go:generate go run golang.org/x/tools/cmd/stringer -type Priority -output priority_string.go
