package camera

import "math/rand"

// Config is one camera placement: tilt and pan in degrees, height in meters,
// focal length in millimeters.
type Config struct {
	Tilt        float64 `json:"tilt" mapstructure:"tilt"`
	Pan         float64 `json:"pan" mapstructure:"pan"`
	Height      float64 `json:"height" mapstructure:"height"`
	FocalLength float64 `json:"focal_length" mapstructure:"focal_length"`
}

// Sampled value sets. Tilt stays near-horizontal so the direction frame
// projection never degenerates.
var (
	tilts   = []float64{85, 90, 95}
	pans    = []float64{40, 45, 50}
	heights = []float64{0.5, 1, 1.5}
	focals  = []float64{50, 60, 70}
)

// shuffleSeed fixes the grid permutation so a given max always selects the
// same configurations, and a larger max strictly extends a smaller one.
const shuffleSeed = 42

// Grid returns the full Cartesian grid of camera configurations in fixed
// nested order (tilt, pan, height, focal length).
func Grid() []Config {
	grid := make([]Config, 0, len(tilts)*len(pans)*len(heights)*len(focals))
	for _, tilt := range tilts {
		for _, pan := range pans {
			for _, height := range heights {
				for _, focal := range focals {
					grid = append(grid, Config{
						Tilt:        tilt,
						Pan:         pan,
						Height:      height,
						FocalLength: focal,
					})
				}
			}
		}
	}
	return grid
}

// Sample deterministically shuffles the full grid and returns the first max
// entries. max larger than the grid returns the whole shuffled grid; max <= 0
// returns an empty slice.
func Sample(max int) []Config {
	grid := Grid()
	rng := rand.New(rand.NewSource(shuffleSeed))
	rng.Shuffle(len(grid), func(i, j int) {
		grid[i], grid[j] = grid[j], grid[i]
	})
	if max < 0 {
		max = 0
	}
	if max > len(grid) {
		max = len(grid)
	}
	return grid[:max]
}
