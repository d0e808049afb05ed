// Package vad watches the live capture buffer for silence and decides when
// a recording should stop or split.
//
// The detector keeps a rolling RMS estimate over the monitor's polling
// windows. Two presets ship the tuned parameter sets ("normal" and
// "aggressive"); every field can be overridden individually. The trailing
// silence required to end a chunk shrinks as the chunk grows, so long
// dictation flushes promptly instead of waiting out the full base pause.
//
// In single-shot mode a completed pause raises the auto-stop callback,
// which the pipeline treats exactly like a hotkey toggle. In long-form mode
// pauses emit chunk boundaries instead — each chunk is transcribed while
// the recording continues — and only a much longer silence or the hard
// session cap stops the session. CombineTranscripts joins the per-chunk
// results, deduplicating the overlap that whisper tends to produce around
// boundaries.
package vad
