// Package buffer provides allocation-free storage primitives for per-sample
// DSP state. Ring is a double-ended circular queue used for sliding windows
// whose length can change at runtime without disturbing the retained values.
package buffer
