// Package mmap maps files read-only into memory.
//
// LocalStore opens snapshot files through this package so decoding works on
// the mapped bytes directly:
//
//	m, err := mmap.Open("runs/000001.snap")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// On platforms without mmap support the file is read into memory instead.
package mmap
