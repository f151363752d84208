package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Typed accessors over the well-known local settings. All of them treat an
// unset key as "off"/default rather than an error.

// BuildType returns "RELEASE" when the local release setting is on,
// otherwise "DEBUG".
func (s *Store) BuildType() string {
	if strings.EqualFold(s.local["release"], "on") {
		return "RELEASE"
	}
	return "DEBUG"
}

// Warnings reports whether the local warnings setting is enabled.
func (s *Store) Warnings() bool {
	return strings.EqualFold(s.local["warnings"], "true")
}

// Alert reports whether build-completion notification is enabled.
func (s *Store) Alert() bool {
	return strings.EqualFold(s.local["alert"], "on")
}

var ipv4Pattern = regexp.MustCompile(`^(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`)

// BMC describes the board management controller configured for a worktree.
type BMC struct {
	Kind     string // "iLO" or "OpenBMC"
	IP       string
	User     string
	Password string
}

// BMCInfo parses the local bmc setting. The value has the form
// "ilo|openbmc;<ip>[;<user>[;<password>]]"; OpenBMC gets default
// credentials when none are given. Returns nil without error if bmc is
// unset.
func (s *Store) BMCInfo() (*BMC, error) {
	raw := s.local["bmc"]
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ";")
	info := &BMC{}
	switch strings.ToLower(parts[0]) {
	case "ilo":
		info.Kind = "iLO"
	case "openbmc":
		info.Kind = "OpenBMC"
		info.User = "root"
		info.Password = "0penBmc"
	default:
		return nil, fmt.Errorf("unrecognized BMC name: %s", parts[0])
	}

	if len(parts) < 2 {
		return nil, fmt.Errorf("IP address required for %s", info.Kind)
	}
	if !ipv4Pattern.MatchString(parts[1]) {
		return nil, fmt.Errorf("invalid IP address: %s", parts[1])
	}
	info.IP = parts[1]

	if len(parts) > 2 {
		info.User = parts[2]
	}
	if len(parts) > 3 {
		info.Password = parts[3]
	}
	return info, nil
}
