//go:build linux

package hwtopo

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

func detect() (*Topology, error) {
	return newLinuxDetector(os.ReadFile, filepath.Glob).detect()
}

// linuxDetector assembles a Topology from sysfs and /proc/cpuinfo. Its
// I/O is routed through read/glob so tests can substitute fixture data,
// the same seam hashicorp/nomad's numalib package uses for its own
// sysfs-backed Linux detection.
type linuxDetector struct {
	read pathReaderFn
	glob pathGlobFn
}

func newLinuxDetector(read pathReaderFn, glob pathGlobFn) *linuxDetector {
	return &linuxDetector{read: read, glob: glob}
}

type linuxCoreKey struct {
	socketID uint32
	coreID   uint32
}

func (d *linuxDetector) detect() (*Topology, error) {
	onlineStr, ok := readTrimmed(d.read, "/sys/devices/system/cpu/online")
	if !ok {
		return nil, errDetection("reading /sys/devices/system/cpu/online")
	}
	lps, err := parseCPUList(onlineStr)
	if err != nil {
		return nil, err
	}
	if len(lps) == 0 {
		return nil, errDetection("no online logical processors reported")
	}

	vendor, modelName, features := detectVendorModelFeatures(d.read)

	coreGroups := make(map[linuxCoreKey][]uint32)
	coreClasses := make(map[linuxCoreKey]CoreClass)
	var order []linuxCoreKey

	type lpCaches struct {
		lp      uint32
		entries []linuxCacheEntry
	}
	var allCaches []lpCaches

	for _, lp := range lps {
		socketID, ok := readUint32(d.read, cpuPath(lp, "topology/physical_package_id"))
		if !ok {
			socketID = 0
		}
		coreID, ok := readUint32(d.read, cpuPath(lp, "topology/core_id"))
		if !ok {
			coreID = lp
		}
		key := linuxCoreKey{socketID: socketID, coreID: coreID}
		if _, seen := coreGroups[key]; !seen {
			order = append(order, key)
			coreClasses[key] = CoreUnknown
		}
		coreGroups[key] = append(coreGroups[key], lp)

		if typeStr, ok := readTrimmed(d.read, cpuPath(lp, "topology/core_type")); ok {
			switch typeStr {
			case "performance":
				coreClasses[key] = CorePerformance
			case "efficiency":
				coreClasses[key] = CoreEfficiency
			}
		}

		allCaches = append(allCaches, lpCaches{lp: lp, entries: readLinuxCaches(d.read, d.glob, lp)})
	}

	switch vendor.id {
	case vendorIntel, vendorAMD, vendorArm, vendorApple:
		for key, class := range coreClasses {
			if class == CoreUnknown {
				coreClasses[key] = CorePerformance
			}
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].socketID != order[j].socketID {
			return order[i].socketID < order[j].socketID
		}
		return order[i].coreID < order[j].coreID
	})

	socketsByID := make(map[uint32]*Socket)
	var socketOrder []uint32
	coresByKey := make(map[linuxCoreKey]*PhysicalCore)

	var globalID uint32
	for _, key := range order {
		s, ok := socketsByID[key.socketID]
		if !ok {
			s = &Socket{ID: key.socketID}
			socketsByID[key.socketID] = s
			socketOrder = append(socketOrder, key.socketID)
		}

		lpIDs := append([]uint32(nil), coreGroups[key]...)
		sort.Slice(lpIDs, func(i, j int) bool { return lpIDs[i] < lpIDs[j] })

		core := &PhysicalCore{
			GlobalID: globalID,
			SocketID: key.socketID,
			Class:    coreClasses[key],
			LPIDs:    lpIDs,
		}
		globalID++
		coresByKey[key] = core
		s.Cores = append(s.Cores, core)
	}

	lpToCoreKey := make(map[uint32]linuxCoreKey)
	for key, lpIDs := range coreGroups {
		for _, lp := range lpIDs {
			lpToCoreKey[lp] = key
		}
	}

	dedup := make(map[cacheKey]*CacheDescriptor)
	for _, lc := range allCaches {
		key, owned := lpToCoreKey[lc.lp]
		if !owned {
			continue
		}
		core := coresByKey[key]
		socket := socketsByID[key.socketID]
		for _, e := range lc.entries {
			desc := &CacheDescriptor{Level: e.level, Kind: e.kind, SizeBytes: e.sizeBytes, LineBytes: e.lineBytes}
			ck := desc.key()
			if existing, ok := dedup[ck]; ok {
				desc = existing
			} else {
				dedup[ck] = desc
			}
			attachLinuxCache(core, socket, desc)
		}
	}

	sort.Slice(socketOrder, func(i, j int) bool { return socketOrder[i] < socketOrder[j] })
	sockets := make([]*Socket, 0, len(socketOrder))
	for _, id := range socketOrder {
		sockets = append(sockets, socketsByID[id])
	}

	t := &Topology{
		Vendor:    vendor,
		ModelName: modelName,
		Features:  features,
		Sockets:   sockets,
	}
	return t, nil
}

// attachLinuxCache implements the "first LP to contribute each slot
// wins" tie-break of spec.md §4.2.
func attachLinuxCache(core *PhysicalCore, socket *Socket, desc *CacheDescriptor) {
	switch desc.Level {
	case CacheLevelL1:
		switch desc.Kind {
		case CacheKindInstruction:
			if core.L1I == nil {
				core.L1I = desc
			}
		case CacheKindData:
			if core.L1D == nil {
				core.L1D = desc
			}
		case CacheKindUnified:
			if core.L1I == nil {
				core.L1I = desc
			}
			if core.L1D == nil {
				core.L1D = desc
			}
		}
	case CacheLevelL2:
		if core.L2 == nil {
			core.L2 = desc
		}
	case CacheLevelL3:
		if socket.L3 == nil {
			socket.L3 = desc
		}
	}
}

func cpuPath(lp uint32, suffix string) string {
	return "/sys/devices/system/cpu/cpu" + strconv.FormatUint(uint64(lp), 10) + "/" + suffix
}

// detectVendorModelFeatures combines the CPUID-derived data (x86_64) or
// architecture-specific query (aarch64) with the /proc/cpuinfo fallback
// required whenever the former leaves a field empty, per spec.md §4.2.
func detectVendorModelFeatures(read pathReaderFn) (Vendor, string, FeatureSet) {
	vendor, modelName, features := archVendorModelFeatures()

	needProcFallback := vendor.id == vendorUnknown || modelName == "" || features.Count() == 0
	if !needProcFallback {
		return vendor, modelName, features
	}

	data, err := read("/proc/cpuinfo")
	if err != nil {
		return vendor, modelName, features
	}
	fields := parseProcCPUInfo(data)

	if vendor.id == vendorUnknown {
		if v, ok := vendorFromProcCPUInfo(fields); ok {
			vendor = v
		}
	}
	if modelName == "" {
		modelName = fields.modelName
	}
	applyProcFlags(&features, fields.flagsOrFeats)

	return vendor, modelName, features
}
