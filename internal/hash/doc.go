// Package hash provides the CRC32-Castagnoli checksum used to verify
// snapshot bodies.
//
//	checksum := hash.CRC32C(data)
//
// For streaming input:
//
//	h := hash.NewCRC32C()
//	h.Write(chunk1)
//	h.Write(chunk2)
//	checksum := h.Sum32()
package hash
