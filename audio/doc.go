// Package audio captures microphone input through PortAudio and prepares it
// for transcription.
//
// The Engine is a lifecycle component that owns the PortAudio runtime. A
// capture session converts the device's native format to the pipeline's
// working format (16 kHz mono float32) as frames arrive: interleaved
// channels are averaged down to mono, the configured input gain is applied,
// and the result is linearly resampled. The silence monitor polls the live
// buffer through Since without interrupting the stream.
//
//	engine := audio.NewEngine(cfg, log)
//	_ = engine.Start(ctx) // registry-managed lifecycle
//
//	_ = engine.StartCapture(ctx)
//	// ...speak...
//	rec, err := engine.StopCapture()
//	if err == nil {
//	    path, _ := audio.SaveRecording(rec, tmpDir)
//	}
//
// Recordings shorter than the configured minimum, or with no sample above
// the noise floor, are rejected with an EMPTY_AUDIO error so the pipeline
// skips transcription entirely.
package audio
