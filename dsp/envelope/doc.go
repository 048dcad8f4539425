// Package envelope extracts a running amplitude envelope from a stream of
// samples, one value per input sample and without allocating on the
// per-sample path.
//
// Included types:
//   - Rectifier: full-wave, positive half-wave and negative half-wave
//     rectification policies.
//   - Peak: stateless detection mode yielding the rectified sample.
//   - RMS: detection mode over a sliding, runtime-resizable window of
//     squared samples with an incrementally maintained sum.
//   - Detector: single-channel attack/release smoother over any Mode.
//   - MultiChannel: a resizable set of independent channels sharing one
//     attack/release/window configuration.
//
// All times are expressed in frames. Converting milliseconds to frames is
// the caller's job (see package core).
//
// None of the types are safe for concurrent use; each detector is meant to
// be owned by a single audio callback.
package envelope
