package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Point is a position on the arena floor with an optional facing
type Point struct {
	X   float64 `yaml:"x"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

// Layout describes the arena floor: bounds, tank spawn points and item pads
// The floor spans [0,Width] on X and [0,Depth] on Z
type Layout struct {
	Name   string  `yaml:"name"`
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
	Spawns []Point `yaml:"spawns"`
	Pads   []Point `yaml:"pads"`
}

// DefaultLayout is a two-player arena with four pads
func DefaultLayout() *Layout {
	return &Layout{
		Name:  "default",
		Width: 80,
		Depth: 40,
		Spawns: []Point{
			{X: 10, Z: 20, Yaw: 90},
			{X: 70, Z: 20, Yaw: 270},
			{X: 40, Z: 6, Yaw: 0},
			{X: 40, Z: 34, Yaw: 180},
		},
		Pads: []Point{
			{X: 25, Z: 10},
			{X: 55, Z: 10},
			{X: 25, Z: 30},
			{X: 55, Z: 30},
		},
	}
}

// LoadLayout reads an arena layout from a YAML file
func LoadLayout(filePath string) (*Layout, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	return ParseLayout(data)
}

// ParseLayout decodes and validates a YAML layout document
func ParseLayout(data []byte) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("failed to parse layout YAML: %w", err)
	}
	if err := layout.Validate(0); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	return &layout, nil
}

// Validate checks bounds and that every point lies on the floor
// players > 0 additionally requires one spawn per player
func (l *Layout) Validate(players int) error {
	if l.Width <= 0 || l.Depth <= 0 {
		return fmt.Errorf("width and depth must be positive, got %vx%v", l.Width, l.Depth)
	}
	if len(l.Spawns) == 0 {
		return fmt.Errorf("spawns cannot be empty")
	}
	if players > len(l.Spawns) {
		return fmt.Errorf("need %d spawns, layout has %d", players, len(l.Spawns))
	}

	for i, p := range l.Spawns {
		if !l.contains(p) {
			return fmt.Errorf("spawn %d at (%v,%v) is outside the floor", i, p.X, p.Z)
		}
	}
	for i, p := range l.Pads {
		if !l.contains(p) {
			return fmt.Errorf("pad %d at (%v,%v) is outside the floor", i, p.X, p.Z)
		}
	}
	return nil
}

func (l *Layout) contains(p Point) bool {
	return p.X >= 0 && p.X <= l.Width && p.Z >= 0 && p.Z <= l.Depth
}
