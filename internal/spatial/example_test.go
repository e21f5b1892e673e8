package spatial_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mikemahoney218/waywiserrr/internal/spatial"
)

func ExampleNearestDistances() {
	samples := mat.NewDense(3, 2, []float64{
		0, 0,
		3, 4,
		6, 8,
	})

	nearest, err := spatial.NearestDistances(samples, samples, false)
	if err != nil {
		panic(err)
	}
	fmt.Println(nearest)
	// Output: [5 5 5]
}

func ExampleMeanDistance() {
	samples := mat.NewDense(2, 2, []float64{
		0, 0,
		3, 4,
	})

	dBar, err := spatial.MeanDistance(samples)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.1f\n", dBar)
	// Output: 5.0
}
