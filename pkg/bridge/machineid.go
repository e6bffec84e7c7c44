package bridge

import (
	"github.com/denisbrodbeck/machineid"
)

// MachineID retrieves the unique ID identifying this host. It is the
// default device ID on the broker.
func MachineID() string {
	id, err := machineid.ID()
	if err != nil {
		panic(err)
	}
	return id
}
