//go:build windows

package hwtopo

import "golang.org/x/sys/windows"

// registryKey is a RAII-style wrapper around a windows.Handle: the key
// is guaranteed closed on every exit path via defer key.Close(), the Go
// idiom for the Rust original's RegistryKeyGuard.
type registryKey struct {
	h windows.Handle
}

func openRegistryKey(root windows.Handle, path string) (*registryKey, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, errIO("encoding registry path %q: %s", path, err)
	}
	var h windows.Handle
	if err := windows.RegOpenKeyEx(root, p, 0, windows.KEY_READ, &h); err != nil {
		return nil, errNotFound("opening registry key %q: %s", path, err)
	}
	return &registryKey{h: h}, nil
}

func (k *registryKey) Close() error {
	if k.h == 0 {
		return nil
	}
	err := windows.RegCloseKey(k.h)
	k.h = 0
	return err
}

// readString reads a REG_SZ value, first querying its size with a nil
// buffer then fetching the full value, matching the two-call sysctl/
// registry pattern used throughout this package's other back-ends.
func (k *registryKey) readString(name string) (string, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return "", errIO("encoding registry value name %q: %s", name, err)
	}

	var valType uint32
	var bufLen uint32
	if err := windows.RegQueryValueEx(k.h, namePtr, nil, &valType, nil, &bufLen); err != nil {
		return "", errNotFound("querying registry value %q size: %s", name, err)
	}
	if bufLen == 0 {
		return "", nil
	}

	buf := make([]byte, bufLen)
	if err := windows.RegQueryValueEx(k.h, namePtr, nil, &valType, &buf[0], &bufLen); err != nil {
		return "", errIO("reading registry value %q: %s", name, err)
	}

	return utf16BytesToString(buf), nil
}

func utf16BytesToString(b []byte) string {
	u16 := make([]uint16, len(b)/2)
	for i := range u16 {
		u16[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return windows.UTF16ToString(u16)
}
