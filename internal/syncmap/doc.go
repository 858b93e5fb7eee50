// Package syncmap offers a lightweight, generic, concurrency-safe map with
// basic Lookup/Set/Delete/Keys operations guarded by a sync.RWMutex. It backs
// the distribution family registry, which can be extended while loads are in
// flight.
package syncmap
