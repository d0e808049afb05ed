// Package util provides generic utility functions shared across the daemon.
//
// It includes slice operations, pointer helpers, map utilities, transcript
// and filename sanitization, and common validation helpers.
package util
