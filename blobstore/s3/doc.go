// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", "bike-sharing/")
//	if err != nil {
//	    return err
//	}
//
//	data, err := blobstore.ReadAll(ctx, store, "day.csv.zst")
//
// # Features
//
//   - Range reads for partial fetches
//   - Parallel whole-object downloads via the S3 transfer manager
//   - Automatic pagination for listing
//   - Configurable key prefix
package s3
