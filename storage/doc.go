// Package storage owns the daemon's on-disk layout and write discipline.
//
// Paths follow the XDG base directory spec: config (dictionary, settings,
// catalog overrides), data (models, history, retained recordings), cache
// (synthesized cues), and runtime (status file, instance lock).
//
// WriteFileAtomic is the single write path for every file an external
// reader might poll: tmp file in the target directory, fsync, rename. A
// bar script reading status.json or a second process reading the settings
// file never observes a torn document.
package storage
