//go:build windows

package hwtopo

import (
	"encoding/binary"
	"sort"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                             = windows.NewLazySystemDLL("kernel32.dll")
	procGetLogicalProcessorInformationEx = kernel32.NewProc("GetLogicalProcessorInformationEx")
)

const (
	relationProcessorCore    = 0
	relationNumaNode         = 1
	relationCache            = 2
	relationProcessorPackage = 3
	relationGroup            = 4
	relationAll              = 0xffff
)

// winGroupAffinity mirrors GROUP_AFFINITY: a 64-bit mask plus a 16-bit
// processor-group index, padded to 16 bytes.
type winGroupAffinity struct {
	mask  uint64
	group uint16
}

func parseGroupAffinity(b []byte) winGroupAffinity {
	return winGroupAffinity{
		mask:  binary.LittleEndian.Uint64(b[0:8]),
		group: binary.LittleEndian.Uint16(b[8:10]),
	}
}

// winProcessorCore is the parsed payload of a PROCESSOR_RELATIONSHIP
// record (used for both RelationProcessorCore and
// RelationProcessorPackage).
type winProcessorCore struct {
	efficiencyClass byte
	groupMasks      []winGroupAffinity
}

func parseProcessorRelationship(b []byte) winProcessorCore {
	efficiencyClass := b[1]
	groupCount := binary.LittleEndian.Uint16(b[22:24])
	masks := make([]winGroupAffinity, 0, groupCount)
	off := 24
	for i := 0; i < int(groupCount); i++ {
		if off+16 > len(b) {
			break
		}
		masks = append(masks, parseGroupAffinity(b[off:off+16]))
		off += 16
	}
	return winProcessorCore{efficiencyClass: efficiencyClass, groupMasks: masks}
}

// winCache is the parsed payload of a CACHE_RELATIONSHIP record, using
// the classic (pre-multi-group) CACHE_RELATIONSHIP layout: one trailing
// GROUP_AFFINITY rather than an array.
type winCache struct {
	level     byte
	cacheType uint32 // PROCESSOR_CACHE_TYPE: 0 Unified, 1 Instruction, 2 Data, 3 Trace
	cacheSize uint32
	lineSize  uint16
	mask      winGroupAffinity
}

func parseCacheRelationship(b []byte) winCache {
	return winCache{
		level:     b[0],
		lineSize:  binary.LittleEndian.Uint16(b[2:4]),
		cacheSize: binary.LittleEndian.Uint32(b[4:8]),
		cacheType: binary.LittleEndian.Uint32(b[8:12]),
		mask:      parseGroupAffinity(b[32:48]),
	}
}

func winCacheKind(t uint32) CacheKind {
	switch t {
	case 0:
		return CacheKindUnified
	case 1:
		return CacheKindInstruction
	case 2:
		return CacheKindData
	case 3:
		return CacheKindTrace
	default:
		return CacheKindUnknown
	}
}

func winCacheLevel(level byte) CacheLevel {
	switch level {
	case 1:
		return CacheLevelL1
	case 2:
		return CacheLevelL2
	case 3:
		return CacheLevelL3
	case 4:
		return CacheLevelL4
	default:
		return CacheLevelUnknown
	}
}

func (m winGroupAffinity) overlaps(other winGroupAffinity) bool {
	return m.group == other.group && m.mask&other.mask != 0
}

func (m winGroupAffinity) lpIDs() []uint32 {
	var out []uint32
	for bit := 0; bit < 64; bit++ {
		if m.mask&(1<<uint(bit)) != 0 {
			out = append(out, uint32(m.group)<<16|uint32(bit))
		}
	}
	return out
}

// getLogicalProcessorInformationEx wraps the raw Win32 call via
// NewLazySystemDLL, following the two-call (null buffer, then sized
// buffer) protocol spec.md §4.3 describes.
func getLogicalProcessorInformationEx() ([]byte, error) {
	var length uint32
	r, _, _ := procGetLogicalProcessorInformationEx.Call(uintptr(relationAll), 0, uintptr(unsafe.Pointer(&length)))
	if r != 0 {
		return nil, errSystemCall("GetLogicalProcessorInformationEx: unexpected success on size query")
	}
	if length == 0 {
		return nil, errDetection("GetLogicalProcessorInformationEx reported zero required bytes")
	}

	buf := make([]byte, length)
	r, _, err := procGetLogicalProcessorInformationEx.Call(uintptr(relationAll), uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&length)))
	if r == 0 {
		return nil, errSystemCall("GetLogicalProcessorInformationEx: %s", err)
	}
	return buf, nil
}

func detect() (*Topology, error) {
	buf, err := getLogicalProcessorInformationEx()
	if err != nil {
		return nil, err
	}

	var cores []winProcessorCore
	var packages []winProcessorCore
	var caches []winCache

	for off := 0; off+8 <= len(buf); {
		relationship := binary.LittleEndian.Uint32(buf[off : off+4])
		size := binary.LittleEndian.Uint32(buf[off+4 : off+8])
		if size == 0 || off+int(size) > len(buf) {
			break
		}
		payload := buf[off+8 : off+int(size)]

		switch relationship {
		case relationProcessorCore:
			cores = append(cores, parseProcessorRelationship(payload))
		case relationProcessorPackage:
			packages = append(packages, parseProcessorRelationship(payload))
		case relationCache:
			caches = append(caches, parseCacheRelationship(payload))
		}

		off += int(size)
	}

	if len(cores) == 0 {
		return nil, errDetection("GetLogicalProcessorInformationEx returned no ProcessorCore records")
	}

	anyEfficiencyClass := false
	for _, c := range cores {
		if c.efficiencyClass != 0 {
			anyEfficiencyClass = true
			break
		}
	}

	type anchoredPackage struct {
		anchor uint32 // lowest-numbered LP, used as a stable socket key
		pkg    winProcessorCore
	}
	var anchored []anchoredPackage
	for _, pkg := range packages {
		var lowest uint32 = ^uint32(0)
		for _, gm := range pkg.groupMasks {
			for _, lp := range gm.lpIDs() {
				if lp < lowest {
					lowest = lp
				}
			}
		}
		anchored = append(anchored, anchoredPackage{anchor: lowest, pkg: pkg})
	}
	sort.Slice(anchored, func(i, j int) bool { return anchored[i].anchor < anchored[j].anchor })

	sockets := make([]*Socket, len(anchored))
	for i := range anchored {
		sockets[i] = &Socket{ID: uint32(i)}
	}

	packageOf := func(core winProcessorCore) int {
		if len(core.groupMasks) == 0 {
			return 0
		}
		firstLP := core.groupMasks[0].lpIDs()
		var lp uint32
		if len(firstLP) > 0 {
			lp = firstLP[0]
		}
		for i, a := range anchored {
			for _, gm := range a.pkg.groupMasks {
				for _, id := range gm.lpIDs() {
					if id == lp {
						return i
					}
				}
			}
		}
		return 0
	}

	var globalID uint32
	physCores := make([]*PhysicalCore, len(cores))
	for i, c := range cores {
		var lpIDs []uint32
		for _, gm := range c.groupMasks {
			lpIDs = append(lpIDs, gm.lpIDs()...)
		}
		sort.Slice(lpIDs, func(a, b int) bool { return lpIDs[a] < lpIDs[b] })

		class := CorePerformance
		if anyEfficiencyClass && c.efficiencyClass == 0 {
			class = CoreEfficiency
		}

		sockIdx := packageOf(c)
		core := &PhysicalCore{
			GlobalID: globalID,
			SocketID: sockets[sockIdx].ID,
			Class:    class,
			LPIDs:    lpIDs,
		}
		globalID++
		physCores[i] = core
		sockets[sockIdx].Cores = append(sockets[sockIdx].Cores, core)
	}

	dedup := make(map[cacheKey]*CacheDescriptor)
	for _, wc := range caches {
		if wc.lineSize == 0 || wc.cacheSize == 0 {
			continue
		}
		desc := &CacheDescriptor{
			Level:     winCacheLevel(wc.level),
			Kind:      winCacheKind(wc.cacheType),
			SizeBytes: uint64(wc.cacheSize),
			LineBytes: uint32(wc.lineSize),
		}
		if !desc.valid() {
			continue
		}
		ck := desc.key()
		if existing, ok := dedup[ck]; ok {
			desc = existing
		} else {
			dedup[ck] = desc
		}

		if desc.Level == CacheLevelL3 {
			for sockIdx, a := range anchored {
				matched := false
				for _, gm := range a.pkg.groupMasks {
					if gm.overlaps(wc.mask) {
						matched = true
						break
					}
				}
				if matched && sockets[sockIdx].L3 == nil {
					sockets[sockIdx].L3 = desc
					break
				}
			}
			continue
		}

		for _, core := range physCores {
			overlapsCore := false
			for _, lp := range core.LPIDs {
				if wc.mask.lpIDs() != nil {
					for _, id := range wc.mask.lpIDs() {
						if id == lp {
							overlapsCore = true
							break
						}
					}
				}
				if overlapsCore {
					break
				}
			}
			if !overlapsCore {
				continue
			}
			attachWindowsCache(core, desc)
		}
	}

	// Edge case: every core reports EfficiencyClass == 0 - meaningless
	// distinction, treat all as Performance (spec.md §4.3).
	if !anyEfficiencyClass {
		for _, c := range physCores {
			c.Class = CorePerformance
		}
	}

	vendor, modelName, features := archVendorModelFeatures()
	vendor = seedAARCH64Vendor(vendor)
	vendor, modelName, features = windowsRegistryFallback(vendor, modelName, features)

	return &Topology{
		Vendor:    vendor,
		ModelName: modelName,
		Features:  features,
		Sockets:   sockets,
	}, nil
}

func attachWindowsCache(core *PhysicalCore, desc *CacheDescriptor) {
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
	}
}

// windowsRegistryFallback consults HKLM\HARDWARE\DESCRIPTION\System\
// CentralProcessor\0 only when cpuid (via archVendorModelFeatures) left
// vendor, model, or features incomplete, per spec.md §4.3.
func windowsRegistryFallback(vendor Vendor, modelName string, features FeatureSet) (Vendor, string, FeatureSet) {
	if vendor.id != vendorUnknown && modelName != "" && features.Count() > 0 {
		return vendor, modelName, features
	}

	key, err := openRegistryKey(windows.HKEY_LOCAL_MACHINE, `HARDWARE\DESCRIPTION\System\CentralProcessor\0`)
	if err != nil {
		return vendor, modelName, features
	}
	defer key.Close()

	if modelName == "" {
		if name, err := key.readString("ProcessorNameString"); err == nil {
			modelName = strings.TrimSpace(name)
		}
	}

	if vendor.id == vendorUnknown {
		if ident, err := key.readString("Identifier"); err == nil {
			lower := strings.ToLower(ident)
			if strings.Contains(lower, "armv8") || strings.Contains(lower, "arm64") {
				vendor = VendorArm
			}
		}
		if vendor.id == vendorUnknown {
			if vid, err := key.readString("VendorIdentifier"); err == nil {
				vendor = vendorFromX86String(vid)
			}
		}
	}

	return vendor, modelName, features
}
