// Package output delivers final transcripts to the user: clipboard copy
// with an optional synthetic paste into the foreground application, with
// graceful degradation when platform tools are missing.
package output

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gen2brain/beeep"

	apperrors "github.com/kbukum/voxd/errors"
	"github.com/kbukum/voxd/logger"
	"github.com/kbukum/voxd/observability"
	"github.com/kbukum/voxd/pipeline"
	"github.com/kbukum/voxd/process"
)

// pasteHint names the missing platform tool in degradation warnings.
const pasteHint = "on Wayland install wtype; on X11 install xdotool"

// Dispatcher delivers transcripts per the configured mode. Implements
// pipeline.Deliverer; delivery errors degrade the cycle, never fail it.
type Dispatcher struct {
	cfg     Config
	log     *logger.Logger
	metrics *observability.Metrics
	chord   chord

	// Injection points for tests.
	writeClipboard func(text string) error
	sendChord      func() error
	run            func(ctx context.Context, cmd process.Command) (*process.Result, error)
	notify         func(title, message string) error

	sleep func(time.Duration)
}

var _ pipeline.Deliverer = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher. cfg must have passed Validate;
// metrics may be nil.
func NewDispatcher(cfg Config, log *logger.Logger, metrics *observability.Metrics) *Dispatcher {
	parsed, _ := parseChord(cfg.PasteChord)
	d := &Dispatcher{
		cfg:     cfg,
		log:     log.WithComponent("output"),
		metrics: metrics,
		chord:   parsed,

		writeClipboard: clipboard.WriteAll,
		sendChord:      parsed.send,
		run:            process.Run,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		sleep: time.Sleep,
	}
	return d
}

// Deliver dispatches text per the configured mode.
func (d *Dispatcher) Deliver(ctx context.Context, text string) error {
	start := time.Now()
	defer func() {
		d.metrics.RecordDeliver(ctx, d.cfg.Mode, time.Since(start))
	}()

	if strings.TrimSpace(text) == "" {
		return apperrors.OutputDispatch("Nothing to deliver.", nil)
	}

	switch d.cfg.Mode {
	case ModeDisabled:
		d.log.Info("Delivery disabled; transcript logged only", map[string]interface{}{
			"chars": len(text),
			"text":  text,
		})
		return nil
	case ModeAutoPaste:
		if err := d.copy(ctx, text); err != nil {
			return err
		}
		d.sleep(d.cfg.PasteDelay)
		if err := d.paste(ctx); err != nil {
			// Degrade to copy-only: the text is already on the
			// clipboard, so the cycle completes.
			d.log.Warn("Auto-paste unavailable, copied instead ("+pasteHint+")", map[string]interface{}{
				"error": err.Error(),
			})
			if nerr := d.notify("voxd", "Auto-paste unavailable; transcript copied to clipboard."); nerr != nil {
				d.log.Debug("Desktop notification failed", map[string]interface{}{
					"error": nerr.Error(),
				})
			}
		}
		return nil
	default:
		return d.copy(ctx, text)
	}
}

// copy writes text to the clipboard, falling back to wl-copy. On total
// failure the text is logged so it stays recoverable from the journal.
func (d *Dispatcher) copy(ctx context.Context, text string) error {
	cerr := d.writeClipboard(text)
	if cerr == nil {
		return nil
	}
	d.log.Debug("Native clipboard write failed, trying wl-copy", map[string]interface{}{
		"error": cerr.Error(),
	})

	_, err := d.run(ctx, process.Command{
		Binary: "wl-copy",
		Stdin:  strings.NewReader(text),
	})
	if err == nil {
		return nil
	}

	d.log.Warn("Clipboard unavailable; transcript follows", map[string]interface{}{
		"text": text,
	})
	return apperrors.OutputDispatch("Could not write the transcript to the clipboard.", err)
}

// paste sends the paste chord, trying the virtual keyboard first and then
// the external tools.
func (d *Dispatcher) paste(ctx context.Context) error {
	if err := d.sendChord(); err == nil {
		return nil
	}

	wtypeArgs, xdotoolArgs := d.chord.external()
	if _, err := d.run(ctx, process.Command{Binary: "wtype", Args: wtypeArgs}); err == nil {
		return nil
	}
	_, err := d.run(ctx, process.Command{Binary: "xdotool", Args: xdotoolArgs})
	if err == nil {
		return nil
	}
	return apperrors.OutputDispatch("No paste mechanism available.", err)
}
