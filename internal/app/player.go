// ABOUTME: Main player application orchestration
// ABOUTME: Coordinates device, tone player, metrics and UI for a playback session
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/harperreed/tonegen/internal/config"
	"github.com/harperreed/tonegen/internal/metrics"
	"github.com/harperreed/tonegen/internal/ui"
	"github.com/harperreed/tonegen/pkg/audio/output"
	"github.com/harperreed/tonegen/pkg/melody"
	"github.com/harperreed/tonegen/pkg/tone"
)

// Player represents the main player application
type Player struct {
	config     *config.Config
	logger     *zap.Logger
	device     output.Device
	tones      *tone.Player
	metricsSrv *http.Server
	tuiProg    *tea.Program
	tuiDone    chan struct{}
	control    *ui.Control
}

// New creates a new player application
func New(cfg *config.Config, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		config: cfg,
		logger: logger,
	}
}

// Start opens the device and starts metrics and the TUI when configured
func (p *Player) Start() error {
	device, err := OpenDevice(p.config.Device, p.logger)
	if err != nil {
		return err
	}
	p.device = device

	playerConfig := tone.PlayerConfig{
		Device:  device,
		Logger:  p.logger,
		OnTone:  p.handleTone,
		OnError: p.handleError,
	}
	// A file renderer has no wall clock to wait on
	if p.config.Device.Backend == "wav" {
		playerConfig.Sleep = func(time.Duration) {}
	}

	p.tones, err = tone.NewPlayer(playerConfig)
	if err != nil {
		device.Close()
		return fmt.Errorf("creating tone player: %w", err)
	}

	if p.config.Metrics.Addr != "" {
		p.metricsSrv = metrics.Serve(p.config.Metrics.Addr, p.logger)
	}

	if p.config.UIEnabled() {
		p.control = ui.NewControl()
		p.tuiProg = ui.Run(p.control)
		p.tuiDone = make(chan struct{})
		go func() {
			defer close(p.tuiDone)
			if _, err := p.tuiProg.Run(); err != nil {
				p.logger.Error("TUI exited with error", zap.Error(err))
			}
		}()

		format := device.Format()
		p.updateTUI(ui.StatusMsg{Format: &format})
	}

	p.logger.Info("player started",
		zap.String("backend", p.config.Device.Backend),
		zap.Stringer("format", device.Format()))
	return nil
}

// Quit is closed when the user asks to stop from the TUI; nil without a TUI
func (p *Player) Quit() <-chan struct{} {
	if p.control == nil {
		return nil
	}
	return p.control.Quit
}

// PlayTone plays a single tone, blocking for its duration
func (p *Player) PlayTone(frequencyHz float64, durationMs int) error {
	p.updateTUI(ui.StatusMsg{
		State:      ui.StatePlaying,
		NoteIndex:  1,
		NoteTotal:  1,
		TotalMs:    durationMs,
		Frequency:  frequencyHz,
		DurationMs: durationMs,
	})
	err := p.tones.Play(frequencyHz, durationMs)
	p.finish(err)
	return err
}

// PlayMelody plays m until it ends, ctx is cancelled or the TUI quits
func (p *Player) PlayMelody(ctx context.Context, m melody.Melody) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-p.Quit():
			cancel()
		case <-ctx.Done():
		}
	}()

	p.logger.Info("playing melody",
		zap.String("title", m.Title),
		zap.Int("notes", len(m.Notes)),
		zap.Int("ms", m.DurationMs()))

	p.updateTUI(ui.StatusMsg{Title: m.Title, NoteTotal: len(m.Notes), TotalMs: m.DurationMs()})

	elapsed := 0
	err := melody.Play(ctx, p.tones, m, func(i int, n melody.Note) {
		state := ui.StatePlaying
		if n.Rest {
			state = ui.StateResting
		}
		p.updateTUI(ui.StatusMsg{
			State:      state,
			NoteIndex:  i + 1,
			ElapsedMs:  elapsed,
			Frequency:  n.Frequency,
			DurationMs: n.DurationMs,
		})
		elapsed += n.DurationMs
	})

	p.finish(err)
	return err
}

func (p *Player) finish(err error) {
	if err != nil {
		p.updateTUI(ui.StatusMsg{State: ui.StateError})
		return
	}
	p.updateTUI(ui.StatusMsg{State: ui.StateDone})
}

// handleTone feeds submitted tones to metrics and the TUI
func (p *Player) handleTone(e tone.Event) {
	metrics.ObserveTone(e)
	p.updateTUI(ui.StatusMsg{
		Played:      true,
		Iterations:  e.Iterations,
		RepeatCount: e.RepeatCount,
	})
}

// handleError feeds failed tones to metrics and the TUI; the tone player logs them
func (p *Player) handleError(err error) {
	metrics.ObserveError(err)
	p.updateTUI(ui.StatusMsg{Err: err})
}

func (p *Player) updateTUI(msg ui.StatusMsg) {
	if p.tuiProg != nil {
		p.tuiProg.Send(msg)
	}
}

// Stop shuts down the TUI, the metrics server and the device
func (p *Player) Stop() error {
	if p.tuiProg != nil {
		p.tuiProg.Quit()
		<-p.tuiDone
		p.tuiProg = nil
	}

	if p.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.metricsSrv.Shutdown(ctx); err != nil {
			p.logger.Warn("metrics shutdown error", zap.Error(err))
		}
	}

	if p.device != nil {
		if err := p.device.Close(); err != nil {
			return fmt.Errorf("closing output: %w", err)
		}
	}

	p.logger.Info("player stopped")
	return nil
}
