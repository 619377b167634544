package tiling_test

import (
	"fmt"

	"github.com/katalvlaran/rankmorph/matrix"
	"github.com/katalvlaran/rankmorph/pattern"
	"github.com/katalvlaran/rankmorph/rank"
	"github.com/katalvlaran/rankmorph/tiling"
)

// ExampleDriver demonstrates a tiled dilation: the 20×20 source is processed
// in 8×8 tiles with halos, producing the same result a whole-matrix run
// would.
func ExampleDriver() {
	src, err := matrix.NewDense(matrix.Byte, 20, 20)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	idx, err := src.Index(10, 10)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	src.SetLong(idx, 200)

	box, err := pattern.Box([]int{-1, -1}, []int{1, 1})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	driver, err := tiling.New(rank.Default(), tiling.WithTileSide(8), tiling.WithWorkers(2))
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	dst, err := driver.Dilation(nil, src, box, 1)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	lit := 0
	for i := 0; i < dst.Len(); i++ {
		if dst.GetLong(i) == 200 {
			lit++
		}
	}
	fmt.Println("cells at 200:", lit)
	// Output:
	// cells at 200: 9
}
