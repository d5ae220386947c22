package devices

import (
	"fmt"
	"math/rand"
)

// Motion indicator tokens.
const (
	colorMotion   = "#FFC107"
	colorNoMotion = "#9E9E9E"
)

// Camera is a battery-powered security camera with a motion sensor.
type Camera struct {
	baseDevice
	motion    bool
	recording bool
	battery   int
}

func NewCamera(id, room string) *Camera {
	return &Camera{
		baseDevice: newBaseDevice(id, room, TypeCamera),
		battery:    100,
	}
}

// SetMotion forces the motion flag to a known value.
func (c *Camera) SetMotion(detected bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.motion = detected
	return c.motion
}

// SimulateMotion samples a random motion reading and stores it.
func (c *Camera) SimulateMotion() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.motion = rand.Intn(2) == 0
	return c.motion
}

func (c *Camera) Motion() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.motion
}

// StartRecording is a no-op while the camera is off.
func (c *Camera) StartRecording() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.on {
		c.recording = true
	}
}

func (c *Camera) StopRecording() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recording = false
}

func (c *Camera) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recording
}

// SetBattery clamps to [0,100] percent.
func (c *Camera) SetBattery(level int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.battery = clampInt(level, 0, 100)
}

func (c *Camera) Battery() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.battery
}

// MotionColor is the display token for the motion indicator.
func (c *Camera) MotionColor() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.motion {
		return colorMotion
	}
	return colorNoMotion
}

func (c *Camera) Describe() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.on {
		return c.offSummary()
	}
	motion := "No Motion"
	if c.motion {
		motion = "Motion Detected!"
	}
	recording := "Standby"
	if c.recording {
		recording = "Recording"
	}
	return fmt.Sprintf("%s (%s): %s - %s - Battery: %d%%", c.id, c.room, motion, recording, c.battery)
}
