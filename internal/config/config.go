package config

import (
	"sync"

	"cubescene/internal/mathutil"

	"github.com/go-gl/mathgl/mgl32"
)

// Bounds for the runtime render settings.
const (
	MinFPSLimit = 0 // 0 disables the limiter
	MaxFPSLimit = 1000
)

// RenderSettings holds the settings the render loop reads every frame.
type RenderSettings struct {
	mu         sync.RWMutex
	fpsLimit   int
	clearColor mgl32.Vec3
	hotReload  bool
}

var globalRenderSettings = &RenderSettings{
	fpsLimit:   60,
	clearColor: mgl32.Vec3{0.1, 0.1, 0.2},
}

// GetFPSLimit returns the frame rate cap; 0 means uncapped
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap, clamped to [MinFPSLimit, MaxFPSLimit]
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.fpsLimit = mathutil.Clamp(limit, MinFPSLimit, MaxFPSLimit)
}

// GetClearColor returns the background color
func GetClearColor() mgl32.Vec3 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.clearColor
}

// SetClearColor sets the background color; components are clamped to [0, 1]
func SetClearColor(c mgl32.Vec3) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	for i := range c {
		c[i] = mathutil.Clamp(c[i], 0, 1)
	}
	globalRenderSettings.clearColor = c
}

// GetHotReload reports whether shader files are watched for changes
func GetHotReload() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.hotReload
}

// SetHotReload enables or disables shader hot reload
func SetHotReload(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.hotReload = enabled
}

// Apply copies the runtime render settings from s into the globals.
func Apply(s Settings) {
	SetFPSLimit(s.Render.FPSLimit)
	SetClearColor(mgl32.Vec3(s.Render.ClearColor))
	SetHotReload(s.Render.HotReload)
}
