// Package jsonfile persists chunk collections as a JSON array.
//
// The format is the one retrieval front ends load directly: an array of
// objects with "id", "content", "source" and, for embedded chunks,
// "embedding", indented by two spaces.
package jsonfile
