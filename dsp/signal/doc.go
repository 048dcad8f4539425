// Package signal generates deterministic test and demonstration signals
// (sines, seeded noise, gated bursts, steps and square waves) for driving
// envelope detectors.
package signal
