// Package convert runs texture conversion jobs: it packs the selected variants
// into PNG files and then runs the native converter on them.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/depp/pbrpack/lib/job"
	"github.com/depp/pbrpack/lib/native"
	"github.com/depp/pbrpack/lib/pack"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrCancelled is the error of a run which was cancelled by the user.
var ErrCancelled = errors.New("cancelled by user")

// Packing uses the first half of the progress range, conversion the second.
const packProgress = 50

// A Result is the outcome of a run.
type Result struct {
	ID    string
	State State    // Completed, Cancelled, or Failed.
	PNGs  []string // Packed files which were written.
	Err   error    // Set if State is Failed or Cancelled.
}

// A Converter runs conversion jobs.
type Converter struct {
	// Runner runs the native converter. If nil, ExecRunner is used.
	Runner native.Runner
	// Log receives status messages, tagged with the run ID. If nil, the
	// standard logrus logger is used.
	Log logrus.FieldLogger
}

type run struct {
	id       string
	rep      Reporter
	log      logrus.FieldLogger
	file     *logrus.Logger
	progress int
}

func (r *run) state(s State) {
	r.log.WithField("state", s).Debug("state change")
	r.rep.State(s)
}

// logf sends a status message to the reporter and the run log. The console
// logger only gets a debug copy, since the reporter is what users see.
func (r *run) logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.log.Debug(msg)
	if r.file != nil {
		r.file.Info(msg)
	}
	r.rep.Log(msg)
}

func (r *run) setProgress(p int) {
	if p > 100 {
		p = 100
	}
	if p <= r.progress {
		return
	}
	r.progress = p
	r.rep.Progress(p)
}

// Run runs a job to completion on the calling goroutine. Cancellation is
// observed only between files: before each file is packed, before the batch
// conversion, and before each per-file conversion. A started native process is
// never interrupted. If rep is nil, progress is not reported.
func (c *Converter) Run(ctx context.Context, j *job.Job, rep Reporter) *Result {
	if rep == nil {
		rep = nopReporter{}
	}
	var base logrus.FieldLogger = c.Log
	if base == nil {
		base = logrus.StandardLogger()
	}
	runner := c.Runner
	if runner == nil {
		runner = native.ExecRunner{}
	}
	id := uuid.NewString()
	r := &run{
		id:  id,
		rep: rep,
		log: base.WithField("run", id),
	}
	res := &Result{ID: id}

	file, fp, err := openRunLog(j.OutputDir())
	if err != nil {
		r.log.Warnf("could not create %s: %v", LogName, err)
	} else {
		defer fp.Close()
		r.file = file
	}
	rep.Progress(0)

	fail := func(err error) *Result {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrCancelled) {
			r.logf("Cancelled.")
			res.State = Cancelled
			res.Err = ErrCancelled
		} else {
			r.logf("Error: %v", err)
			res.State = Failed
			res.Err = err
		}
		r.state(res.State)
		return res
	}

	// Pack.
	r.state(PackingImages)
	r.logf("Converting to PNG...")
	pngs, err := pack.Pack(ctx, j, func(i, n int, path string) {
		r.logf("Saved: %s", filepath.Base(path))
		r.setProgress(i * packProgress / n)
	})
	res.PNGs = pngs
	if err != nil {
		return fail(err)
	}

	// Convert.
	r.state(ConvertingNative)
	exe := j.ConverterPath()
	switch j.Mode() {
	case native.Batch:
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		r.logf("Running %s batch...", filepath.Base(exe))
		if err := runner.Run(exe, native.BatchArgs(j.OutputDir())...); err != nil {
			return fail(errors.Wrap(err, "batch conversion failed"))
		}
		r.logf("PAA batch complete.")
	case native.PerFile:
		r.logf("Running %s per-file...", filepath.Base(exe))
		for i, png := range pngs {
			if err := ctx.Err(); err != nil {
				return fail(err)
			}
			if err := runner.Run(exe, native.FileArgs(png)...); err != nil {
				return fail(errors.Wrapf(err, "could not convert %s", filepath.Base(png)))
			}
			r.logf("Converted: %s", filepath.Base(png))
			r.setProgress(packProgress + (i+1)*(100-packProgress)/len(pngs))
		}
	default:
		return fail(errors.Errorf("unknown converter mode: %v", j.Mode()))
	}

	r.setProgress(100)
	r.logf("All done.")
	res.State = Completed
	r.state(Completed)
	return res
}

// Outputs returns the paths of the native converter's outputs for the PNG
// files of a result, which exist after a completed run.
func (res *Result) Outputs() []string {
	out := make([]string, len(res.PNGs))
	for i, p := range res.PNGs {
		out[i] = native.OutputPath(p)
	}
	return out
}

// CleanPNGs removes the intermediate PNG files of a result.
func (res *Result) CleanPNGs() error {
	var first error
	for _, p := range res.PNGs {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) && first == nil {
			first = err
		}
	}
	return first
}
