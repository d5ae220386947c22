package websocket

import (
	"encoding/json"
	"time"

	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/automation"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/devices"
)

// Message types pushed to presentation clients.
const (
	MessageTypeStateSnapshot    = "state_snapshot"
	MessageTypeConnectionStatus = "connection_status"
)

// Message is the envelope for every frame sent to a client.
type Message struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// ToJSON converts the message to JSON bytes.
func (m Message) ToJSON() []byte {
	m.Timestamp = time.Now().UTC()
	data, _ := json.Marshal(m)
	return data
}

// DeviceData flattens a device into a broadcastable map.
func DeviceData(dev devices.Device) map[string]interface{} {
	data := map[string]interface{}{
		"id":     dev.ID(),
		"type":   dev.Type(),
		"room":   dev.Room(),
		"on":     dev.On(),
		"status": dev.StatusText(),
		"color":  dev.Color(),
		"detail": dev.Describe(),
	}

	switch d := dev.(type) {
	case *devices.Light:
		data["brightness"] = d.Brightness()
		data["color_temp"] = d.ColorTemp()
	case *devices.Thermostat:
		data["temperature"] = d.Temperature()
		data["target"] = d.Target()
		data["mode"] = d.Mode()
		data["humidity"] = d.Humidity()
	case *devices.Camera:
		data["motion"] = d.Motion()
		data["recording"] = d.Recording()
		data["battery"] = d.Battery()
	case *devices.Door:
		data["locked"] = d.Locked()
		data["open"] = d.IsOpen()
	case *devices.Window:
		data["open_percentage"] = d.OpenPercentage()
		data["blinds_percentage"] = d.BlindsPercentage()
		data["light_level"] = d.LightLevel()
	case *devices.Fan:
		data["speed"] = d.Speed()
		data["oscillating"] = d.Oscillating()
		data["timer_minutes"] = d.TimerMinutes()
	}
	return data
}

// RuleData flattens a rule into a broadcastable map.
func RuleData(rule *automation.Rule) map[string]interface{} {
	return map[string]interface{}{
		"name":           rule.Name(),
		"enabled":        rule.Enabled(),
		"last_triggered": rule.LastTriggered(),
		"run_count":      rule.RunCount(),
	}
}

// StateSnapshotMessage captures the full registry and rule state for one
// broadcast frame.
func StateSnapshotMessage(system *automation.System) Message {
	devs := system.Devices()
	deviceData := make([]map[string]interface{}, 0, len(devs))
	for _, d := range devs {
		deviceData = append(deviceData, DeviceData(d))
	}

	rules := system.Rules()
	ruleData := make([]map[string]interface{}, 0, len(rules))
	for _, r := range rules {
		ruleData = append(ruleData, RuleData(r))
	}

	return Message{
		Type: MessageTypeStateSnapshot,
		Data: map[string]interface{}{
			"enabled":        system.Enabled(),
			"last_execution": system.LastExecution(),
			"devices":        deviceData,
			"rules":          ruleData,
		},
	}
}
