//go:build linux

package hwtopo

import (
	"sort"
	"strconv"
	"strings"
)

// pathReaderFn reads the full contents of a sysfs/procfs file. Production
// code wires this to os.ReadFile; tests inject fixture data instead,
// following the same seam hashicorp/nomad's numalib package uses for its
// own sysfs-backed detection.
type pathReaderFn func(path string) ([]byte, error)

// pathGlobFn lists paths matching a shell pattern. Production code wires
// this to filepath.Glob; tests inject a fixed directory listing.
type pathGlobFn func(pattern string) ([]string, error)

func readTrimmed(read pathReaderFn, path string) (string, bool) {
	b, err := read(path)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func readUint32(read pathReaderFn, path string) (uint32, bool) {
	s, ok := readTrimmed(read, path)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

// parseCPUList parses the sysfs "online"-style list format: a
// comma-separated sequence of singleton IDs and inclusive ranges, e.g.
// "0-3,6,8-11". Returned IDs are sorted ascending and deduplicated.
func parseCPUList(s string) ([]uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	seen := make(map[uint32]bool)
	var ids []uint32
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if dash := strings.IndexByte(part, '-'); dash >= 0 {
			lo, err := strconv.ParseUint(part[:dash], 10, 32)
			if err != nil {
				return nil, errIO("parsing cpu list range %q: %s", part, err)
			}
			hi, err := strconv.ParseUint(part[dash+1:], 10, 32)
			if err != nil {
				return nil, errIO("parsing cpu list range %q: %s", part, err)
			}
			if lo > hi {
				return nil, errIO("parsing cpu list range %q: reversed range", part)
			}
			for i := lo; i <= hi; i++ {
				id := uint32(i)
				if !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		} else {
			n, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				return nil, errIO("parsing cpu list entry %q: %s", part, err)
			}
			id := uint32(n)
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// parseCacheSize parses a sysfs cache "size" value: an integer with an
// optional "K" suffix meaning multiply by 1024.
func parseCacheSize(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	mult := uint64(1)
	if strings.HasSuffix(s, "K") || strings.HasSuffix(s, "k") {
		mult = 1024
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n * mult, true
}

func cacheKindFromType(t string) CacheKind {
	switch t {
	case "Data":
		return CacheKindData
	case "Instruction":
		return CacheKindInstruction
	case "Unified":
		return CacheKindUnified
	default:
		return CacheKindUnknown
	}
}

// linuxCacheEntry is one …/cpu{i}/cache/index{M}/ directory's parsed
// content, still attributed to the LP that reported it.
type linuxCacheEntry struct {
	level     CacheLevel
	kind      CacheKind
	sizeBytes uint64
	lineBytes uint32
}

// readLinuxCaches reads every cache/index* directory visible to LP i.
// Indices whose required files are incomplete are skipped, per spec.md
// §4.2.
func readLinuxCaches(read pathReaderFn, glob pathGlobFn, lp uint32) []linuxCacheEntry {
	base := "/sys/devices/system/cpu/cpu" + strconv.FormatUint(uint64(lp), 10) + "/cache"
	dirs, err := glob(base + "/index*")
	if err != nil {
		return nil
	}
	sort.Strings(dirs)

	var out []linuxCacheEntry
	for _, dir := range dirs {
		levelStr, ok := readTrimmed(read, dir+"/level")
		if !ok {
			continue
		}
		levelN, err := strconv.Atoi(levelStr)
		if err != nil {
			continue
		}
		var level CacheLevel
		switch levelN {
		case 1:
			level = CacheLevelL1
		case 2:
			level = CacheLevelL2
		case 3:
			level = CacheLevelL3
		case 4:
			level = CacheLevelL4
		default:
			level = CacheLevelUnknown
		}

		typeStr, ok := readTrimmed(read, dir+"/type")
		if !ok {
			continue
		}
		kind := cacheKindFromType(typeStr)

		sizeStr, ok := readTrimmed(read, dir+"/size")
		if !ok {
			continue
		}
		size, ok := parseCacheSize(sizeStr)
		if !ok {
			continue
		}

		line, ok := readUint32(read, dir+"/coherency_line_size")
		if !ok {
			continue
		}

		d := linuxCacheEntry{level: level, kind: kind, sizeBytes: size, lineBytes: line}
		if !(CacheDescriptor{Level: d.level, SizeBytes: d.sizeBytes, LineBytes: d.lineBytes}).valid() {
			continue
		}
		out = append(out, d)
	}
	return out
}

// procCPUInfoFields holds the values parsed from the first block of
// /proc/cpuinfo, up to the first blank line, per spec.md §4.2.
type procCPUInfoFields struct {
	vendorID     string // x86 "vendor_id"
	modelName    string // x86 "model name"
	implementer  string // aarch64 "CPU implementer"
	flagsOrFeats []string
}

func parseProcCPUInfo(data []byte) procCPUInfoFields {
	var f procCPUInfoFields
	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			break
		}
		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			continue
		}
		key := strings.TrimSpace(line[:colon])
		val := strings.TrimSpace(line[colon+1:])
		switch key {
		case "vendor_id":
			f.vendorID = val
		case "model name":
			f.modelName = val
		case "CPU implementer":
			f.implementer = val
		case "flags", "Features":
			f.flagsOrFeats = strings.Fields(val)
		}
	}
	return f
}

// applyProcFlags sets FeatureSet bits for recognised /proc/cpuinfo
// tokens (spec.md §4.2). Unrecognised tokens are ignored.
func applyProcFlags(fs *FeatureSet, tokens []string) {
	for _, tok := range tokens {
		switch tok {
		case "mmx":
			fs.set(FeatureMMX)
		case "sse":
			fs.set(FeatureSSE)
		case "sse2":
			fs.set(FeatureSSE2)
		case "pni":
			fs.set(FeatureSSE3)
		case "ssse3":
			fs.set(FeatureSSSE3)
		case "sse4_1":
			fs.set(FeatureSSE41)
		case "sse4_2":
			fs.set(FeatureSSE42)
		case "fma":
			fs.set(FeatureFMA3)
		case "avx":
			fs.set(FeatureAVX)
		case "avx2":
			fs.set(FeatureAVX2)
		case "avx512f":
			fs.set(FeatureAVX512F)
		case "avx512bw":
			fs.set(FeatureAVX512BW)
		case "avx512cd":
			fs.set(FeatureAVX512CD)
		case "avx512dq":
			fs.set(FeatureAVX512DQ)
		case "avx512vl":
			fs.set(FeatureAVX512VL)
		case "aes":
			fs.set(FeatureAES)
		case "sha_ni", "sha1", "sha2":
			fs.set(FeatureSHA)
		case "crc32":
			fs.set(FeatureCRC32)
		case "asimd", "neon", "fp":
			fs.set(FeatureNEON)
		case "sve":
			fs.set(FeatureSVE)
		}
	}
}

func vendorFromProcCPUInfo(f procCPUInfoFields) (Vendor, bool) {
	switch f.vendorID {
	case "GenuineIntel":
		return VendorIntel, true
	case "AuthenticAMD":
		return VendorAMD, true
	case "Apple":
		return VendorApple, true
	}
	if f.implementer != "" {
		n, err := strconv.ParseUint(strings.TrimPrefix(f.implementer, "0x"), 16, 64)
		if err == nil {
			return vendorFromARMImplementer(n), true
		}
	}
	return Vendor{}, false
}
