package pattern_test

import (
	"fmt"

	"github.com/katalvlaran/rankmorph/pattern"
)

// ExampleBox demonstrates a structuring element and its reflection.
func ExampleBox() {
	p, err := pattern.Box([]int{-1, 0}, []int{1, 1})
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	min, max := p.BoundingBox()
	fmt.Println("points:", p.PointCount())
	fmt.Println("box:   ", min, max)

	smin, smax := p.Symmetric().BoundingBox()
	fmt.Println("sym box:", smin, smax)
	// Output:
	// points: 6
	// box:    [-1 0] [1 1]
	// sym box: [-1 -1] [1 0]
}
