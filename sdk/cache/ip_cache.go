package cache

import (
	"os"
	"strconv"
)

// RecheckTimesENV overrides how many unchanged runs may pass before an
// update is forced through anyway.
const RecheckTimesENV = "PORKBUN_IP_CACHE_TIMES"

const defaultRecheckTimes = 5

// IPCache remembers the address last pushed to the registrar so a daemon
// run can skip the API round trip while the public IP is unchanged. Every
// few unchanged runs the update is forced regardless, in case the remote
// record drifted behind our back.
type IPCache struct {
	Addr  string // last address pushed
	Times int    // unchanged runs left before a forced update
}

// Check records newAddr and reports whether an update should be pushed.
func (c *IPCache) Check(newAddr string) bool {
	if newAddr == "" {
		return true
	}
	if c.Addr != newAddr || c.Times <= 1 {
		c.Addr = newAddr
		c.Times = recheckTimes() + 1
		return true
	}
	c.Addr = newAddr
	c.Times--
	return false
}

// Reset forgets the cached address, so the next run always updates. Called
// after a failed update.
func (c *IPCache) Reset() {
	*c = IPCache{}
}

func recheckTimes() int {
	n, err := strconv.Atoi(os.Getenv(RecheckTimesENV))
	if err != nil || n <= 0 {
		return defaultRecheckTimes
	}
	return n
}
