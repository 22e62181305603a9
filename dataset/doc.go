// Package dataset decodes the bike-sharing day and hour tables.
//
// Files are read in two steps: ReadFrame parses the CSV into raw cells
// (enough for data-quality checks), then Frame.Days or Frame.Hours decode
// typed records. NewDayTable and NewHourTable turn records into a
// column-oriented numeric Table for statistics and clustering.
//
// Loader fetches both tables concurrently from a blobstore.BlobStore,
// transparently decompressing by file extension.
package dataset
