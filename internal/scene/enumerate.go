package scene

import (
	"spatial-scene-gen/internal/camera"
	"spatial-scene-gen/internal/props"
	"spatial-scene-gen/internal/spatial"
)

// Plan is one fully specified render candidate. Ephemeral: it exists for the
// duration of a single render attempt.
type Plan struct {
	Ground    ObjectInstance
	Figure    ObjectInstance
	Direction spatial.Direction
	Camera    camera.Config
}

// PairSet is the ordered worklist for one unordered object pair.
type PairSet struct {
	GroundName string
	FigureName string
	Plans      []Plan
}

// Enumerate expands object pairs × orientation variants × directions × camera
// configurations into a deterministic worklist. For every unordered pair
// (i<j by list order) it crosses the two objects' orientation variants per
// direction, keeps only the first maxPerDirection candidates per direction in
// generation order, then crosses each retained candidate with every camera
// configuration. Direction-then-candidate-then-camera order is the output
// contract: the same object list always yields the same scene sequence and
// therefore the same image indices.
func Enumerate(names []string, table props.Table, cams []camera.Config, maxPerDirection int) ([]PairSet, error) {
	var sets []PairSet
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			groundSpec, err := table.Lookup(names[i])
			if err != nil {
				return nil, err
			}
			figureSpec, err := table.Lookup(names[j])
			if err != nil {
				return nil, err
			}
			groundVars := ExpandOrientations(groundSpec)
			figureVars := ExpandOrientations(figureSpec)

			set := PairSet{GroundName: names[i], FigureName: names[j]}
			for _, dir := range spatial.Directions {
				kept := 0
				for _, g := range groundVars {
					for _, f := range figureVars {
						if kept >= maxPerDirection {
							break
						}
						for _, cam := range cams {
							set.Plans = append(set.Plans, Plan{
								Ground:    g,
								Figure:    f,
								Direction: dir,
								Camera:    cam,
							})
						}
						kept++
					}
				}
			}
			sets = append(sets, set)
		}
	}
	return sets, nil
}
