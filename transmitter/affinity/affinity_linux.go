//go:build linux

// Package affinity pins the process to CPUs excluded from the general
// scheduler (isolcpus= boot parameter) when any exist. Isolation only
// reduces preemption jitter during the busy-wait transmission loop; the
// transmitter stays correct without it.
package affinity

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// Isolate inspects the process affinity mask against the scheduler's
// default mask (read from PID 1) and, when spare CPUs exist, pins the
// process to them. The returned string is what /status reports.
func Isolate() string {
	var schedSet, pidSet unix.CPUSet
	if err := unix.SchedGetaffinity(1, &schedSet); err != nil {
		log.Printf("affinity: cannot read scheduler mask: %v", err)
		return "unknown"
	}
	if err := unix.SchedGetaffinity(0, &pidSet); err != nil {
		log.Printf("affinity: cannot read process mask: %v", err)
		return "unknown"
	}

	total := presentCPUs()

	if !subset(&pidSet, &schedSet, total) {
		cpus := listCPUs(&pidSet, total)
		log.Printf("affinity: process already isolated on cpus %v", cpus)
		return fmt.Sprintf("isolated on cpus %v", cpus)
	}

	if schedSet.Count() >= total {
		log.Print("affinity: no cpu isolated from the OS scheduler")
		log.Print("affinity: to isolate one, add isolcpus=n to the kernel command line (/boot/cmdline.txt)")
		return "not isolated"
	}

	var want unix.CPUSet
	for i := 0; i < total; i++ {
		if !schedSet.IsSet(i) {
			want.Set(i)
		}
	}
	if err := unix.SchedSetaffinity(0, &want); err != nil {
		log.Printf("affinity: cannot pin process: %v", err)
		return "not isolated"
	}
	cpus := listCPUs(&want, total)
	log.Printf("affinity: pinned process to isolated cpus %v", cpus)
	return fmt.Sprintf("isolated on cpus %v", cpus)
}

// presentCPUs counts the CPUs the kernel knows about. runtime.NumCPU
// cannot be used here: it reflects the process affinity mask, which on
// an isolcpus system already excludes the CPUs we are looking for.
func presentCPUs() int {
	data, err := os.ReadFile("/sys/devices/system/cpu/present")
	if err != nil {
		return runtime.NumCPU()
	}
	n, err := parseCPUList(string(data))
	if err != nil {
		return runtime.NumCPU()
	}
	return n
}

// parseCPUList counts CPUs in a kernel list like "0-3" or "0,2-5".
func parseCPUList(s string) (int, error) {
	max := -1
	for _, span := range strings.Split(strings.TrimSpace(s), ",") {
		bounds := strings.SplitN(span, "-", 2)
		n, err := strconv.Atoi(bounds[len(bounds)-1])
		if err != nil {
			return 0, err
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

func subset(a, b *unix.CPUSet, total int) bool {
	for i := 0; i < total; i++ {
		if a.IsSet(i) && !b.IsSet(i) {
			return false
		}
	}
	return true
}

func listCPUs(s *unix.CPUSet, total int) []int {
	var cpus []int
	for i := 0; i < total; i++ {
		if s.IsSet(i) {
			cpus = append(cpus, i)
		}
	}
	return cpus
}
