// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"countdown/config"
	"countdown/widget"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// Overwrite allows replacing existing output files.
	Overwrite bool

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Builder returns widget builder honoring output configuration.
func (e *LocalEnv) Builder(opts ...widget.BuilderOption) *widget.Builder {
	if e.Cfg != nil && e.Cfg.Output.SkipInlineVars {
		opts = append([]widget.BuilderOption{widget.WithoutInlineVars()}, opts...)
	}
	return widget.NewBuilder(e.Log, opts...)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
