package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/automation"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/core/devices"
	"github.com/2001J/Smart-Home-IoT-Simulator/internal/websocket"
)

type handlers struct {
	system *automation.System
	hub    *websocket.Hub
	logger *logrus.Logger
}

func newHandlers(system *automation.System, hub *websocket.Hub, logger *logrus.Logger) *handlers {
	return &handlers{system: system, hub: hub, logger: logger}
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) status(c *gin.Context) {
	devs := h.system.Devices()
	on := 0
	for _, d := range devs {
		if d.On() {
			on++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"enabled":        h.system.Enabled(),
		"last_execution": h.system.LastExecution(),
		"device_count":   len(devs),
		"devices_on":     on,
		"rule_count":     len(h.system.Rules()),
		"rooms":          h.system.Rooms(),
		"websocket":      h.hub.Stats(),
	})
}

// listDevices returns the registry in insertion order, optionally filtered
// by ?room= or ?type=.
func (h *handlers) listDevices(c *gin.Context) {
	var devs []devices.Device
	switch {
	case c.Query("room") != "":
		devs = h.system.GetDevicesByRoom(c.Query("room"))
	case c.Query("type") != "":
		devs = h.system.GetDevicesByType(devices.Type(c.Query("type")))
	default:
		devs = h.system.Devices()
	}

	out := make([]map[string]interface{}, 0, len(devs))
	for _, d := range devs {
		out = append(out, websocket.DeviceData(d))
	}
	c.JSON(http.StatusOK, gin.H{"devices": out, "count": len(out)})
}

func (h *handlers) getDevice(c *gin.Context) {
	dev, err := h.system.GetDeviceByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, websocket.DeviceData(dev))
}

func (h *handlers) listRules(c *gin.Context) {
	rules := h.system.Rules()
	out := make([]map[string]interface{}, 0, len(rules))
	for _, r := range rules {
		out = append(out, websocket.RuleData(r))
	}
	c.JSON(http.StatusOK, gin.H{"rules": out, "count": len(out)})
}

func (h *handlers) listRooms(c *gin.Context) {
	rooms := h.system.Rooms()
	out := make([]gin.H, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, gin.H{
			"name":         room,
			"device_count": len(h.system.GetDevicesByRoom(room)),
		})
	}
	c.JSON(http.StatusOK, gin.H{"rooms": out, "count": len(out)})
}
