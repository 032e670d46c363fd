//go:build linux

package hwtopo

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/r3labs/diff/v3"
)

// linuxFixture builds an in-memory sysfs/procfs tree for linuxDetector,
// the same pathReaderFn/pathGlobFn injection seam hashicorp/nomad's
// numalib package uses for its own sysfs-backed tests.
type linuxFixture struct {
	files map[string][]byte
	dirs  map[string][]string // glob pattern -> matching paths
}

func newLinuxFixture() *linuxFixture {
	return &linuxFixture{files: map[string][]byte{}, dirs: map[string][]string{}}
}

func (f *linuxFixture) set(path, content string) {
	f.files[path] = []byte(content)
}

func (f *linuxFixture) addCache(lp uint32, index int, level int, kind, size string, lineBytes int) {
	dir := fmt.Sprintf("/sys/devices/system/cpu/cpu%d/cache/index%d", lp, index)
	f.set(dir+"/level", fmt.Sprintf("%d", level))
	f.set(dir+"/type", kind)
	f.set(dir+"/size", size)
	f.set(dir+"/coherency_line_size", fmt.Sprintf("%d", lineBytes))
	globKey := fmt.Sprintf("/sys/devices/system/cpu/cpu%d/cache/index*", lp)
	f.dirs[globKey] = append(f.dirs[globKey], dir)
}

func (f *linuxFixture) reader() pathReaderFn {
	return func(path string) ([]byte, error) {
		b, ok := f.files[path]
		if !ok {
			return nil, fmt.Errorf("no such fixture file: %s", path)
		}
		return b, nil
	}
}

func (f *linuxFixture) globber() pathGlobFn {
	return func(pattern string) ([]string, error) {
		dirs := append([]string(nil), f.dirs[pattern]...)
		sort.Strings(dirs)
		return dirs, nil
	}
}

// scenario 1: single-socket 4c8t non-hybrid Intel (spec.md §8 scenario 1).
func buildScenario1() *linuxFixture {
	f := newLinuxFixture()
	f.set("/sys/devices/system/cpu/online", "0-7")
	f.set("/proc/cpuinfo", "vendor_id\t: GenuineIntel\nmodel name\t: Test Intel CPU\nflags\t\t: fpu vme avx2\n\nprocessor\t: 1\n")
	for lp := uint32(0); lp < 8; lp++ {
		coreID := lp / 2
		f.set(fmt.Sprintf("/sys/devices/system/cpu/cpu%d/topology/physical_package_id", lp), "0")
		f.set(fmt.Sprintf("/sys/devices/system/cpu/cpu%d/topology/core_id", lp), fmt.Sprintf("%d", coreID))
		f.addCache(lp, 0, 1, "Data", "32K", 64)
		f.addCache(lp, 1, 1, "Instruction", "32K", 64)
		f.addCache(lp, 2, 2, "Unified", "256K", 64)
		f.addCache(lp, 3, 3, "Unified", "8192K", 64)
	}
	return f
}

// scenario 2: Intel Alder Lake 6P+8E, no HT on E (spec.md §8 scenario 2).
func buildScenario2() *linuxFixture {
	f := newLinuxFixture()
	f.set("/sys/devices/system/cpu/online", "0-19")
	f.set("/proc/cpuinfo", "vendor_id\t: GenuineIntel\nmodel name\t: Test Alder Lake\nflags\t\t: fpu vme avx2\n\nprocessor\t: 1\n")
	// LPs 0-11: 6 P-cores x 2 SMT threads each.
	for lp := uint32(0); lp < 12; lp++ {
		coreID := lp / 2
		f.set(fmt.Sprintf("/sys/devices/system/cpu/cpu%d/topology/physical_package_id", lp), "0")
		f.set(fmt.Sprintf("/sys/devices/system/cpu/cpu%d/topology/core_id", lp), fmt.Sprintf("%d", coreID))
		f.set(fmt.Sprintf("/sys/devices/system/cpu/cpu%d/topology/core_type", lp), "performance")
	}
	// LPs 12-19: 8 E-cores, single threaded.
	for i, lp := 0, uint32(12); lp < 20; i, lp = i+1, lp+1 {
		coreID := uint32(100 + i)
		f.set(fmt.Sprintf("/sys/devices/system/cpu/cpu%d/topology/physical_package_id", lp), "0")
		f.set(fmt.Sprintf("/sys/devices/system/cpu/cpu%d/topology/core_id", lp), fmt.Sprintf("%d", coreID))
		f.set(fmt.Sprintf("/sys/devices/system/cpu/cpu%d/topology/core_type", lp), "efficiency")
	}
	return f
}

func diffReport(t *testing.T, got, want interface{}) string {
	t.Helper()
	c, err := diff.Diff(want, got)
	if err != nil {
		t.Fatalf("diff.Diff: %s", err)
	}
	var b strings.Builder
	for _, ch := range c {
		fmt.Fprintf(&b, "%s %v: want %v, got %v\n", ch.Type, ch.Path, ch.From, ch.To)
	}
	return b.String()
}

func TestLinuxDetectScenario1SingleSocketNonHybrid(t *testing.T) {
	f := buildScenario1()
	top, err := newLinuxDetector(f.reader(), f.globber()).detect()
	if err != nil {
		t.Fatalf("detect() = %v, want nil", err)
	}
	top.finalize()

	if len(top.Sockets) != 1 {
		t.Fatalf("len(Sockets) = %d, want 1", len(top.Sockets))
	}
	if top.TotalPhysicalCores != 4 {
		t.Fatalf("TotalPhysicalCores = %d, want 4", top.TotalPhysicalCores)
	}
	if top.TotalLogicalProcessors != 8 {
		t.Fatalf("TotalLogicalProcessors = %d, want 8", top.TotalLogicalProcessors)
	}
	if top.IsHybrid() {
		t.Fatal("IsHybrid() = true, want false")
	}
	if !top.Features.Has(FeatureAVX2) {
		t.Fatal("expected FeatureAVX2 to be set")
	}
	for _, c := range top.Sockets[0].Cores {
		if c.Class != CorePerformance {
			t.Fatalf("core %d class = %s, want Performance", c.GlobalID, c.Class)
		}
		if len(c.LPIDs) != 2 {
			t.Fatalf("core %d has %d lp_ids, want 2", c.GlobalID, len(c.LPIDs))
		}
	}

	if err := top.validate(); err != nil {
		t.Fatalf("validate() = %v", err)
	}

	want := &Topology{
		TotalSockets: 1, TotalPhysicalCores: 4, TotalLogicalProcessors: 8,
		TotalPerformanceCores: 4, TotalEfficiencyCores: 0,
	}
	gotAggregates := &Topology{
		TotalSockets: top.TotalSockets, TotalPhysicalCores: top.TotalPhysicalCores,
		TotalLogicalProcessors: top.TotalLogicalProcessors,
		TotalPerformanceCores:  top.TotalPerformanceCores, TotalEfficiencyCores: top.TotalEfficiencyCores,
	}
	if report := diffReport(t, gotAggregates, want); report != "" {
		t.Fatalf("aggregate mismatch:\n%s", report)
	}
}

func TestLinuxDetectScenario2AlderLakeHybrid(t *testing.T) {
	f := buildScenario2()
	top, err := newLinuxDetector(f.reader(), f.globber()).detect()
	if err != nil {
		t.Fatalf("detect() = %v, want nil", err)
	}
	top.finalize()

	if top.TotalPerformanceCores != 6 {
		t.Fatalf("TotalPerformanceCores = %d, want 6", top.TotalPerformanceCores)
	}
	if top.TotalEfficiencyCores != 8 {
		t.Fatalf("TotalEfficiencyCores = %d, want 8", top.TotalEfficiencyCores)
	}
	if top.TotalLogicalProcessors != 20 {
		t.Fatalf("TotalLogicalProcessors = %d, want 20", top.TotalLogicalProcessors)
	}
	if !top.IsHybrid() {
		t.Fatal("IsHybrid() = false, want true")
	}
	if err := top.validate(); err != nil {
		t.Fatalf("validate() = %v", err)
	}
}

func TestLinuxDetectMissingOnlineFileIsDetectionError(t *testing.T) {
	f := newLinuxFixture()
	_, err := newLinuxDetector(f.reader(), f.globber()).detect()
	if err == nil {
		t.Fatal("detect() = nil error, want a Detection error")
	}
	herr, ok := err.(*Error)
	if !ok || herr.Kind != Detection {
		t.Fatalf("detect() error = %v, want Kind == Detection", err)
	}
}

func TestLinuxDetectCacheDedup(t *testing.T) {
	// All 8 LPs of scenario 1 report the same L3; it must collapse to a
	// single CacheDescriptor shared by the one socket (spec.md §4.2).
	f := buildScenario1()
	top, err := newLinuxDetector(f.reader(), f.globber()).detect()
	if err != nil {
		t.Fatalf("detect() = %v", err)
	}
	if top.Sockets[0].L3 == nil {
		t.Fatal("expected socket L3 to be populated")
	}
	if top.Sockets[0].L3.SizeBytes != 8192*1024 {
		t.Fatalf("L3 size = %d, want %d", top.Sockets[0].L3.SizeBytes, 8192*1024)
	}
	for _, c := range top.Sockets[0].Cores {
		if c.L2 == nil || c.L2.SizeBytes != 256*1024 {
			t.Fatalf("core %d: L2 = %+v, want 256K", c.GlobalID, c.L2)
		}
	}
}
