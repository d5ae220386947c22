package devices

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed default_devices.yaml
var defaultFixture []byte

// fixtureEntry is one device declaration in a YAML fixture.
type fixtureEntry struct {
	ID        string `yaml:"id"`
	Type      Type   `yaml:"type"`
	Room      string `yaml:"room"`
	ColorTemp int    `yaml:"color_temp,omitempty"`
}

// LoadFixture builds devices from a YAML device list. Entries are returned
// in declaration order, which becomes registry order.
func LoadFixture(data []byte) ([]Device, error) {
	var entries []fixtureEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse device fixture: %w", err)
	}

	devs := make([]Device, 0, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("device fixture entry %d is missing an id", i)
		}
		switch e.Type {
		case TypeLight:
			devs = append(devs, NewLight(e.ID, e.Room, e.ColorTemp))
		case TypeThermostat:
			devs = append(devs, NewThermostat(e.ID, e.Room))
		case TypeCamera:
			devs = append(devs, NewCamera(e.ID, e.Room))
		case TypeDoor:
			devs = append(devs, NewDoor(e.ID, e.Room))
		case TypeWindow:
			devs = append(devs, NewWindow(e.ID, e.Room))
		case TypeFan:
			devs = append(devs, NewFan(e.ID, e.Room))
		default:
			return nil, fmt.Errorf("device %q has unknown type %q", e.ID, e.Type)
		}
	}
	return devs, nil
}

// DefaultDevices returns the embedded reference configuration: 19 devices
// across five rooms.
func DefaultDevices() ([]Device, error) {
	return LoadFixture(defaultFixture)
}
