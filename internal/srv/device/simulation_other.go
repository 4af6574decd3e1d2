//go:build !amd64
// +build !amd64

package device

// No simulation window outside amd64 hosts, the mirror is still kept.
type simulationWindow struct{}

func (d *Display) startSimulation() {
}

func (d *Display) invalidateSimulationWindow() {
}

func (d *Display) closeSimulationWindow() {
}
