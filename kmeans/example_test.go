package kmeans_test

import (
	"fmt"

	"github.com/hupe1980/bikestats/core"
	"github.com/hupe1980/bikestats/kmeans"
)

func ExampleCluster() {
	// (temperature, rentals) for five cold and two warm days.
	points := []core.Point{
		{X: 0.34, Y: 985}, {X: 0.36, Y: 801}, {X: 0.20, Y: 1349},
		{X: 0.20, Y: 1562}, {X: 0.23, Y: 1600},
		{X: 0.78, Y: 5900}, {X: 0.80, Y: 6050},
	}

	res, err := kmeans.Cluster(points, 2,
		kmeans.WithInitialCentroids([]core.Point{points[0], points[6]}),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(res.Assignments)
	fmt.Println(res.Sizes())
	fmt.Println(res.Converged)
	// Output:
	// [0 0 0 0 0 1 1]
	// [5 2]
	// true
}
