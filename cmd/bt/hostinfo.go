package main

import (
	"os"
	"runtime"
	"strings"
)

// cpuInfo probes the CPU vendor and type for the read-only local
// settings recorded at init. The architecture always comes from the
// runtime; the vendor string comes from /proc/cpuinfo where available.
func cpuInfo() (vendor, cpu string) {
	cpu = runtime.GOARCH
	vendor = cpuVendorFromProc("/proc/cpuinfo")
	if vendor == "" {
		vendor = "unknown"
	}
	return vendor, cpu
}

func cpuVendorFromProc(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "vendor_id", "CPU implementer":
			return vendorLabel(strings.TrimSpace(value))
		}
	}
	return ""
}

// vendorLabel maps raw vendor identifiers to the short labels local
// config records.
func vendorLabel(raw string) string {
	switch raw {
	case "GenuineIntel":
		return "Intel"
	case "AuthenticAMD":
		return "AMD"
	case "0x41":
		return "ARM"
	}
	return raw
}

// platformLabel is the host OS label recorded as the local `platform`.
func platformLabel() string {
	return runtime.GOOS
}
