package components

// Appearance holds the visual attributes of a particle.
// It is written once at spawn; systems only read it.
type Appearance struct {
	Radius  float64
	Opacity float64 // [0, 1]
	Color   uint8   // Palette index
}
