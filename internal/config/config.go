// Package config handles studio configuration loading and management.
package config

// Config holds all studio settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Studio  StudioConfig  `yaml:"studio"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// StudioConfig holds the initial scene and posing settings.
type StudioConfig struct {
	ModelPath    string  `yaml:"model_path"`    // Tried once at startup; mannequin on failure
	HeadsRatio   float32 `yaml:"heads_ratio"`   // Head-to-body ratio, 8 = unit scale
	Realism      float32 `yaml:"realism"`       // 0..1, drives light intensities
	FOV          float32 `yaml:"fov"`           // Vertical field of view in degrees
	Background   string  `yaml:"background"`    // Hex colour, e.g. "#ffe3f2"
	RotateSpeed  float32 `yaml:"rotate_speed"`  // Radians per pixel of drag
	MarkerRadius float32 `yaml:"marker_radius"` // Pick radius of joint markers
}

// ExportConfig holds output locations.
type ExportConfig struct {
	OutputDir      string `yaml:"output_dir"`
	PoseFile       string `yaml:"pose_file"`
	ScreenshotFile string `yaml:"screenshot_file"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Studio: StudioConfig{
			ModelPath:    "assets/models/human.glb",
			HeadsRatio:   8,
			Realism:      0.5,
			FOV:          45,
			Background:   "#ffe3f2",
			RotateSpeed:  0.005,
			MarkerRadius: 0.06,
		},
		Export: ExportConfig{
			OutputDir:      ".",
			PoseFile:       "pose.json",
			ScreenshotFile: "posecraft.png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
