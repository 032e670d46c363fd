//go:build !linux && !darwin && !windows

package hwtopo

import "runtime"

// detect on an unlisted GOOS synthesises a single-socket, single-class
// topology from runtime.NumCPU, the only portable signal available.
// This is deliberately minimal: none of spec.md's platform back-ends
// target this build, so there is no sysfs/registry/sysctl analogue to
// ground it on.
func detect() (*Topology, error) {
	n := runtime.NumCPU()
	if n <= 0 {
		return nil, errDetection("runtime.NumCPU() returned %d", n)
	}

	lpIDs := make([]uint32, n)
	for i := range lpIDs {
		lpIDs[i] = uint32(i)
	}

	core := &PhysicalCore{
		GlobalID: 0,
		SocketID: 0,
		Class:    CorePerformance,
		LPIDs:    lpIDs,
	}
	socket := &Socket{ID: 0, Cores: []*PhysicalCore{core}}

	return &Topology{
		Vendor:    VendorUnknown,
		ModelName: "",
		Features:  FeatureSet{},
		Sockets:   []*Socket{socket},
	}, nil
}
