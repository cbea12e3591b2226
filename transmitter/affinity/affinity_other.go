//go:build !linux

package affinity

// Isolate is a no-op off Linux; affinity syscalls are unavailable.
func Isolate() string {
	return "unsupported"
}
