// Package hash provides the CRC32-Castagnoli checksum used to detect
// corrupt cache blocks on disk.
package hash
