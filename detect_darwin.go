//go:build darwin

package hwtopo

import "strconv"

func detect() (*Topology, error) {
	totalPhysical, ok := sysctl32("hw.physicalcpu")
	if !ok || totalPhysical == 0 {
		return nil, errDetection("hw.physicalcpu reported 0 or was unavailable")
	}
	totalLogical, ok := sysctl32("hw.logicalcpu")
	if !ok || totalLogical == 0 {
		totalLogical = totalPhysical
	}
	numSockets, ok := sysctl32("hw.packages")
	if !ok || numSockets == 0 {
		numSockets = 1
	}

	vendor := darwinVendor()
	modelName := sysctl("machdep.cpu.brand_string")
	features := darwinFeatures()

	perfCores, effCores, hybrid := darwinHybridCounts(totalPhysical)

	sockets := synthesizeDarwinSockets(numSockets, totalPhysical, totalLogical, perfCores, effCores)
	attachDarwinCaches(sockets, hybrid, perfCores)

	l3Bytes, hasL3 := sysctl64("hw.l3cachesize")
	lineSize, _ := sysctl32("hw.cachelinesize")
	if hasL3 && l3Bytes > 0 && lineSize > 0 {
		attachDarwinL3(sockets, l3Bytes, lineSize)
	}

	return &Topology{
		Vendor:    vendor,
		ModelName: modelName,
		Features:  features,
		Sockets:   sockets,
	}, nil
}

func darwinVendor() Vendor {
	if v := sysctl("machdep.cpu.vendor"); v != "" {
		return vendorFromX86String(v)
	}
	return VendorApple
}

func darwinFeatures() FeatureSet {
	var fs FeatureSet
	fs.setIf(sysctlBool("hw.optional.neon"), FeatureNEON)
	fs.setIf(sysctlBool("hw.optional.arm.FEAT_AES"), FeatureAES)
	hasSHA := sysctlBool("hw.optional.arm.FEAT_SHA1") ||
		sysctlBool("hw.optional.arm.FEAT_SHA3") ||
		sysctlBool("hw.optional.arm.FEAT_SHA256") ||
		sysctlBool("hw.optional.arm.FEAT_SHA512")
	fs.setIf(hasSHA, FeatureSHA)
	fs.setIf(sysctlBool("hw.optional.arm.FEAT_CRC32"), FeatureCRC32)
	fs.setIf(sysctlBool("hw.optional.arm.FEAT_SME"), FeatureSVE)
	return fs
}

// darwinHybridCounts reads the Apple-Silicon perflevel keys. hw.nperflevels
// >= 2 signals a hybrid part; perflevel0 is P-cores, perflevel1 is
// E-cores (spec.md §4.4).
func darwinHybridCounts(totalPhysical uint32) (perfCores, effCores uint32, hybrid bool) {
	nLevels, ok := sysctl32("hw.nperflevels")
	if !ok || nLevels < 2 {
		return totalPhysical, 0, false
	}
	p, okP := sysctl32("hw.perflevel0.physicalcpu")
	e, okE := sysctl32("hw.perflevel1.physicalcpu")
	if !okP || !okE {
		return totalPhysical, 0, false
	}
	return p, e, true
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// synthesizeDarwinSockets derives per-LP topology from aggregate scalars,
// since macOS hands out only socket/core/LP counts rather than a
// traversable structure (spec.md §4.4's "Synthesis").
func synthesizeDarwinSockets(numSockets, totalPhysical, totalLogical, perfCores, effCores uint32) []*Socket {
	lpPerCore := ceilDiv(totalLogical, totalPhysical)
	if lpPerCore == 0 {
		lpPerCore = 1
	}
	coresPerSocket := ceilDiv(totalPhysical, numSockets)

	sockets := make([]*Socket, numSockets)
	var globalID uint32
	var nextLP uint32
	var coresAssigned uint32

	for s := uint32(0); s < numSockets; s++ {
		sockets[s] = &Socket{ID: s}

		coresThisSocket := coresPerSocket
		if s == numSockets-1 {
			coresThisSocket = totalPhysical - coresAssigned
		}

		for c := uint32(0); c < coresThisSocket; c++ {
			class := CoreEfficiency
			if globalID < perfCores {
				class = CorePerformance
			}

			lpIDs := make([]uint32, 0, lpPerCore)
			for i := uint32(0); i < lpPerCore && nextLP < totalLogical; i++ {
				lpIDs = append(lpIDs, nextLP)
				nextLP++
			}
			if len(lpIDs) == 0 {
				lpIDs = []uint32{nextLP}
				nextLP++
			}

			core := &PhysicalCore{
				GlobalID: globalID,
				SocketID: s,
				Class:    class,
				LPIDs:    lpIDs,
			}
			globalID++
			coresAssigned++
			sockets[s].Cores = append(sockets[s].Cores, core)
		}
	}

	return sockets
}

// attachDarwinCaches attaches per-class L1i/L1d/L2 descriptors read from
// hw.perflevelK.* keys. The L2 descriptor is logically cluster-shared
// (cpusperl2 sibling cores) but replicated per-core here for model
// uniformity, per spec.md §4.4.
func attachDarwinCaches(sockets []*Socket, hybrid bool, perfCores uint32) {
	numLevels := 1
	if hybrid {
		numLevels = 2
	}

	for level := 0; level < numLevels; level++ {
		prefix := "hw.perflevel" + strconv.Itoa(level) + "."
		l1i, hasL1I := sysctl64(prefix + "l1icachesize")
		l1d, hasL1D := sysctl64(prefix + "l1dcachesize")
		l2, hasL2 := sysctl64(prefix + "l2cachesize")
		lineSize, hasLine := sysctl32("hw.cachelinesize")
		if !hasLine || lineSize == 0 {
			continue
		}

		var l1iDesc, l1dDesc, l2Desc *CacheDescriptor
		if hasL1I && l1i > 0 {
			d := &CacheDescriptor{Level: CacheLevelL1, Kind: CacheKindInstruction, SizeBytes: l1i, LineBytes: lineSize}
			if d.valid() {
				l1iDesc = d
			}
		}
		if hasL1D && l1d > 0 {
			d := &CacheDescriptor{Level: CacheLevelL1, Kind: CacheKindData, SizeBytes: l1d, LineBytes: lineSize}
			if d.valid() {
				l1dDesc = d
			}
		}
		if hasL2 && l2 > 0 {
			d := &CacheDescriptor{Level: CacheLevelL2, Kind: CacheKindUnified, SizeBytes: l2, LineBytes: lineSize}
			if d.valid() {
				l2Desc = d
			}
		}

		wantClass := CorePerformance
		if level == 1 {
			wantClass = CoreEfficiency
		}

		for _, s := range sockets {
			for _, core := range s.Cores {
				if core.Class != wantClass && hybrid {
					continue
				}
				core.L1I = l1iDesc
				core.L1D = l1dDesc
				core.L2 = l2Desc
			}
		}
	}
}

// attachDarwinL3 splits the single reported L3 size evenly across
// sockets, per spec.md §4.4 ("L3, if reported, is split evenly across
// sockets"). This is a documented guess: macOS exposes no mechanism to
// discover true L3 topology on multi-socket hardware (spec.md §9).
func attachDarwinL3(sockets []*Socket, totalBytes uint64, lineSize uint32) {
	if len(sockets) == 0 {
		return
	}
	perSocket := totalBytes / uint64(len(sockets))
	if perSocket == 0 {
		return
	}
	desc := &CacheDescriptor{Level: CacheLevelL3, Kind: CacheKindUnified, SizeBytes: perSocket, LineBytes: lineSize}
	if !desc.valid() {
		return
	}
	for _, s := range sockets {
		s.L3 = desc
	}
}
