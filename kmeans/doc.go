// Package kmeans implements k-means clustering of two-dimensional points.
//
// Cluster runs Lloyd's algorithm: centroids start at k distinct input points
// sampled without replacement, every point is assigned to its nearest
// centroid (lowest index on ties), and centroids move to the mean of their
// points until no centroid moves or the iteration cap is reached.
//
// A cluster that receives no points keeps its previous centroid. Each such
// occurrence is reported in Result.EmptyClusters, logged at debug level and
// passed to the hook installed with WithEmptyClusterHook.
//
// # Usage
//
//	res, err := kmeans.Cluster(points, 3, kmeans.WithSeed(42))
//	if err != nil {
//	    return err
//	}
//	for i, c := range res.Centroids {
//	    fmt.Println(i, c)
//	}
package kmeans
