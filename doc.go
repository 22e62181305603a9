// Package bikestats analyzes the bike-sharing day and hour tables the way
// the rental dashboard does: data-quality checks, descriptive statistics,
// distributions, grouped means, correlations, a temperature regression and
// a k-means segmentation of the filtered days.
//
// # Quick Start
//
//	ctx := context.Background()
//	dash := bikestats.New(blobstore.NewLocalStore("./data"))
//
//	data, err := dash.Load(ctx, "day.csv", "hour.csv")
//	if err != nil {
//	    return err
//	}
//
//	rep, err := dash.Analyze(ctx, data, filter.Filter{
//	    Seasons: []int{dataset.Summer},
//	}, bikestats.DefaultClusterSpec())
//	if err != nil {
//	    return err
//	}
//	rep.WriteText(os.Stdout)
//
// # Remote Data
//
// Any blobstore.BlobStore works as a source; compression is chosen by file
// extension (.gz, .zst, .lz4):
//
//	store, _ := s3.New(ctx, "my-bucket", "bike-sharing/")
//	dash := bikestats.New(store, bikestats.WithResourceLimits(bikestats.ResourceConfig{
//	    IOLimitBytesPerSec: 8 << 20,
//	}))
//	data, _ := dash.Load(ctx, "day.csv.zst", "hour.csv.zst")
//
// Wrap the store in a blobstore.CachingStore to keep fetched blocks on disk
// between runs.
//
// # Clustering
//
// The segmentation runs Lloyd's k-means (package kmeans) on two columns of
// the selected rows, temp and cnt by default. Seeded runs are reproducible.
//
// # Observability
//
// Structured logging goes through log/slog (see Logger and WithLogger);
// operation counts and latencies go to a MetricsCollector.
package bikestats
