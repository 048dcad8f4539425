// Package core holds the small shared pieces every processor and host
// adapter in this module leans on: processing configuration options,
// millisecond/frame conversion and numeric helpers.
package core
