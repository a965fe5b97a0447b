package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

const machineIDLen = 12

// MachineID retrieves the ID identifying the machine, hashed per application
// so the raw machine ID is never published.
func MachineID() string {
	id, err := machineid.ProtectedID("collar")
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		if id, err = os.Hostname(); err != nil {
			return "unknown"
		}
		return id
	}
	if len(id) > machineIDLen {
		id = id[:machineIDLen]
	}
	return id
}
