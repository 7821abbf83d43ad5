package main

import (
	"context"
	"testing"
	"time"

	"swing-copilot/internal/config"

	"github.com/alicebob/miniredis/v2"
	tea "github.com/charmbracelet/bubbletea"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestMainBootstrap(t *testing.T) {
	mr := miniredis.RunT(t)
	restore := stubDeps(mr.Addr())
	defer restore()

	done := make(chan struct{})
	go func() {
		main()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("main did not exit")
	}
}

func stubDeps(redisAddr string) func() {
	origLoadEnv := loadEnvFunc
	origLoadConfig := loadConfigFunc
	origInitTracer := initTracerFunc
	origRunProgram := runProgramFunc

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{
			ScoringAPIURL:       "http://localhost:5000",
			RequestTimeoutSecs:  1,
			RedisURL:            redisAddr,
			ProbeSymbol:         "AAPL",
			AuthReturnDelaySecs: 1,
			Watchlist:           []string{"AAPL"},
		}
	}
	initTracerFunc = func(ctx context.Context) (*sdktrace.TracerProvider, trace.Tracer, error) {
		tp := sdktrace.NewTracerProvider()
		return tp, tp.Tracer("test"), nil
	}
	runProgramFunc = func(tea.Model) error { return nil }

	return func() {
		loadEnvFunc = origLoadEnv
		loadConfigFunc = origLoadConfig
		initTracerFunc = origInitTracer
		runProgramFunc = origRunProgram
	}
}
