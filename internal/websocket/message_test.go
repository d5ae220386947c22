package websocket

import (
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/automation"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/devices"
)

func TestDeviceData(t *testing.T) {
	light := devices.NewLight("Desk Light", "Office", 5000)
	light.SetBrightness(40)

	data := DeviceData(light)
	assert.Equal(t, "Desk Light", data["id"])
	assert.Equal(t, devices.TypeLight, data["type"])
	assert.Equal(t, true, data["on"])
	assert.Equal(t, 40, data["brightness"])
	assert.Equal(t, 5000, data["color_temp"])
	assert.Equal(t, "Desk Light (Office): 40% - 5000K", data["detail"])
}

func TestStateSnapshotMessage(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	sys := automation.NewSystem(log, nil)

	require.NoError(t, sys.AddDevice(devices.NewLight("Light", "Living Room", 4000)))
	require.NoError(t, sys.AddDevice(devices.NewDoor("Door", "Entrance")))
	require.NoError(t, sys.AddRule(automation.NewAutoLockRule()))

	msg := StateSnapshotMessage(sys)
	assert.Equal(t, MessageTypeStateSnapshot, msg.Type)
	assert.Equal(t, true, msg.Data["enabled"])
	assert.Len(t, msg.Data["devices"], 2)
	assert.Len(t, msg.Data["rules"], 1)

	// The envelope serializes cleanly
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.ToJSON(), &decoded))
	assert.Equal(t, MessageTypeStateSnapshot, decoded["type"])
	assert.NotEmpty(t, decoded["timestamp"])
}
