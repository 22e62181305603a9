// Package codec selects stream compression for dataset files.
//
// The codec is chosen by file extension so a reference like
// "s3://bikes/day.csv.zst" decodes transparently:
//
//	.gz   gzip (klauspost/compress)
//	.zst  zstandard (klauspost/compress)
//	.lz4  lz4 frame (pierrec/lz4)
//
// Any other extension is read as-is.
package codec
