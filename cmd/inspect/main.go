// Inspect walks a generated scene directory, validates every record and
// prints per-direction counts.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"spatial-scene-gen/internal/scene"
	"spatial-scene-gen/internal/spatial"
)

func main() {
	sceneDir := flag.String("scenes", "output/scenes", "Scene record directory to inspect")
	imageDir := flag.String("images", "", "Image directory; when set, verify each record's image exists")
	flag.Parse()

	counts := make(map[string]int)
	var total, bad int

	err := filepath.WalkDir(*sceneDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") || d.Name() == "manifest.json" {
			return nil
		}
		total++
		rec, err := scene.ReadRecord(path)
		if err != nil {
			bad++
			fmt.Fprintf(os.Stderr, "bad record: %v\n", err)
			return nil
		}
		counts[directionOf(path)]++
		if *imageDir != "" {
			img := filepath.Join(*imageDir, relDir(*sceneDir, path), rec.ImageFilename)
			if _, err := os.Stat(img); err != nil {
				bad++
				fmt.Fprintf(os.Stderr, "missing image for %s: %s\n", path, img)
			}
		}
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "walk %s: %v\n", *sceneDir, err)
		os.Exit(1)
	}

	fmt.Printf("records: %d\n", total)
	for _, d := range spatial.Directions {
		fmt.Printf("  %-6s %d\n", d, counts[string(d)])
	}
	if other := total - counts["front"] - counts["right"] - counts["behind"] - counts["left"]; other > 0 {
		fmt.Printf("  %-6s %d\n", "other", other)
	}
	if bad > 0 {
		fmt.Printf("problems: %d\n", bad)
		os.Exit(1)
	}
}

// directionOf extracts the direction from the record's parent directory name
// (pair directories are named ground_figure_direction).
func directionOf(path string) string {
	parent := filepath.Base(filepath.Dir(path))
	for _, d := range spatial.Directions {
		if strings.HasSuffix(parent, "_"+string(d)) {
			return string(d)
		}
	}
	return ""
}

// relDir returns the record's directory relative to the scene root, which
// mirrors the image directory layout.
func relDir(root, path string) string {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		return ""
	}
	return rel
}
