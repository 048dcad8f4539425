// Package follower adapts the envelope detectors to host audio callbacks.
//
// A Follower is configured in wall-clock units (sample rate in Hz, attack,
// release and RMS window in milliseconds), converts them to frames and
// drives a multi-channel envelope detector over interleaved blocks or
// go-audio FloatBuffers. When a buffer arrives with a different channel
// count or sample rate, the Follower reconfigures itself before processing
// it, keeping the running envelope of surviving channels.
package follower
