package sound

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/kbukum/voxd/process"
)

// playerCandidate describes one playback binary and how to build its
// arguments for a file and volume percentage.
type playerCandidate struct {
	binary string
	args   func(file string, volume int) []string
}

// playerChain is probed in order; the first binary on PATH that plays
// successfully is kept for the rest of the session.
var playerChain = []playerCandidate{
	{
		binary: "paplay",
		args: func(file string, volume int) []string {
			// paplay volume is linear 0..65536.
			return []string{"--volume", strconv.Itoa(volume * 65536 / 100), file}
		},
	},
	{
		binary: "aplay",
		args: func(file string, volume int) []string {
			return []string{"-q", file}
		},
	},
	{
		binary: "ffplay",
		args: func(file string, volume int) []string {
			return []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", strconv.Itoa(volume), file}
		},
	},
	{
		binary: "mpv",
		args: func(file string, volume int) []string {
			return []string{"--no-video", "--really-quiet", "--volume=" + strconv.Itoa(volume), file}
		},
	},
}

// runFunc executes one playback command; swapped out in tests.
type runFunc func(ctx context.Context, cmd process.Command) (*process.Result, error)

// player resolves and remembers the working playback binary.
type player struct {
	run        runFunc
	candidates []playerCandidate
	// next is the index of the candidate to try; moves forward when a
	// candidate fails so broken players are not retried every cue.
	next int
}

func newPlayer(forced string, run runFunc) *player {
	candidates := playerChain
	if forced != "" {
		candidates = []playerCandidate{{
			binary: forced,
			args:   func(file string, volume int) []string { return []string{file} },
		}}
	}
	return &player{run: run, candidates: candidates}
}

// play plays file at the given volume, advancing down the chain past
// candidates that are missing or fail. Returns an error only when the whole
// chain is exhausted.
func (p *player) play(ctx context.Context, file string, volume int) error {
	var lastErr error
	for p.next < len(p.candidates) {
		candidate := p.candidates[p.next]
		if _, err := exec.LookPath(candidate.binary); err != nil {
			p.next++
			continue
		}
		_, err := p.run(ctx, process.Command{
			Binary: candidate.binary,
			Args:   candidate.args(file, volume),
		})
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		lastErr = err
		p.next++
	}
	if lastErr != nil {
		return fmt.Errorf("sound: no working player: %w", lastErr)
	}
	return fmt.Errorf("sound: no player found on PATH")
}

// exhausted reports whether every candidate has failed.
func (p *player) exhausted() bool {
	return p.next >= len(p.candidates)
}
