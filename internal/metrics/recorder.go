package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel is the final status of one CLI run.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// FileResult describes what happened to a single imported or generated file.
type FileResult string

const (
	FileWritten   FileResult = "written"
	FileUnchanged FileResult = "unchanged"
	FileSkipped   FileResult = "skipped"
	FileFailed    FileResult = "failed"
)

// Recorder defines observability hooks for runs, stages and files.
// Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	// IncFileResult counts one file of the given kind (article, image, config).
	IncFileResult(kind string, result FileResult)
	AddBytesWritten(kind string, n int64)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
func (NoopRecorder) IncFileResult(string, FileResult)           {}
func (NoopRecorder) AddBytesWritten(string, int64)              {}

// StageTimer measures one stage and reports its duration and result.
type StageTimer struct {
	rec   Recorder
	stage string
	start time.Time
}

// StartStage starts timing stage on rec.
func StartStage(rec Recorder, stage string) *StageTimer {
	if rec == nil {
		rec = NoopRecorder{}
	}
	return &StageTimer{rec: rec, stage: stage, start: time.Now()}
}

// Done records the elapsed time and a result derived from err.
func (t *StageTimer) Done(err error) time.Duration {
	d := time.Since(t.start)
	t.rec.ObserveStageDuration(t.stage, d)
	t.rec.IncStageResult(t.stage, ResultFor(err))
	return d
}

// ResultFor maps an error to the stage result label.
func ResultFor(err error) ResultLabel {
	switch {
	case err == nil:
		return ResultSuccess
	case isCanceled(err):
		return ResultCanceled
	default:
		return ResultFatal
	}
}
