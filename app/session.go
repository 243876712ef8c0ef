package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/beamtime/conversion"
	"github.com/AnkushinDaniil/beamtime/detectorarray"
	"github.com/AnkushinDaniil/beamtime/entity"
	"github.com/AnkushinDaniil/beamtime/entity/parameters"
	"github.com/AnkushinDaniil/beamtime/spectrometer"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownPanel   = errors.New("unknown panel")
	ErrUsage          = errors.New("usage")
)

// errQuit ends the session after the current frame.
var errQuit = errors.New("quit")

// Session is the frame loop: every input line is one edit followed by one
// redraw.
type Session struct {
	app      *App
	params   parameters.Parameters
	autosave time.Duration
	lastSave time.Time
	now      func() time.Time
}

// NewSession returns a session over a. A zero autosave disables periodic
// checkpoints; state is still saved on exit.
func NewSession(a *App, params parameters.Parameters, autosave time.Duration) *Session {
	return &Session{
		app:      a,
		params:   params,
		autosave: autosave,
		lastSave: time.Now(),
		now:      time.Now,
	}
}

// Run draws frames to out until in is exhausted, the user quits or ctx is
// cancelled. The state is saved on the way out in every case.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	sessionTime := time.Now()
	frames := 0
	defer func() {
		log.WithFields(log.Fields{
			"time":   time.Since(sessionTime),
			"frames": frames,
		}).Debug("Session finished")
	}()

	ui := s.app.NewSurface(out)
	if err := s.app.Render(ui); err != nil {
		return err
	}

	lineChan := make(chan string)
	go func() {
		defer close(lineChan)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lineChan <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.WithError(err).Error("Failed to read input")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("Interrupted, saving state")
			return s.save(context.WithoutCancel(ctx))
		case line, ok := <-lineChan:
			if !ok {
				return s.save(ctx)
			}
			frames++

			msg, err := s.Apply(ctx, line)
			if errors.Is(err, errQuit) {
				return s.save(ctx)
			}
			if err != nil {
				msg = "error: " + err.Error()
			}
			if msg != "" {
				fmt.Fprintln(out, msg)
			}

			s.checkpoint(ctx)
			if err := s.app.Render(ui); err != nil {
				return err
			}
		}
	}
}

// Apply performs the edit described by one input line and returns a message
// for the frame. Errors leave the state as it was.
func (s *Session) Apply(ctx context.Context, line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "set":
		if len(args) < 2 {
			return "", fmt.Errorf("%w: set <panel>.<field> <value>", ErrUsage)
		}
		return "", s.set(args[0], strings.Join(args[1:], " "))
	case "add":
		s.app.State.CeBrA.AddDetector()
		return "", nil
	case "remove":
		if len(args) != 1 {
			return "", fmt.Errorf("%w: remove <index>", ErrUsage)
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return "", fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		return "", s.app.State.CeBrA.RemoveDetector(i)
	case "preset":
		if len(args) != 1 {
			return "", fmt.Errorf("%w: preset <%s>", ErrUsage, strings.Join(entity.Presets(), "|"))
		}
		return "", s.app.State.CeBrA.ApplyPreset(args[0])
	case "show", "hide":
		if len(args) != 1 {
			return "", fmt.Errorf("%w: %s <panel>", ErrUsage, cmd)
		}
		flag := s.app.visibility(args[0])
		if flag == nil {
			return "", fmt.Errorf("%w: %q", ErrUnknownPanel, args[0])
		}
		*flag = cmd == "show"
		return "", nil
	case "save":
		if err := s.save(ctx); err != nil {
			return "", err
		}
		return "state saved", nil
	case "reset":
		s.app.Reset()
		return "defaults restored", nil
	case "plot":
		if len(args) != 1 {
			return "", fmt.Errorf("%w: plot <file.html>", ErrUsage)
		}
		if err := s.plot(args[0]); err != nil {
			return "", err
		}
		return "chart written to " + args[0], nil
	case "help":
		return Help(), nil
	case "quit", "exit":
		return "", errQuit
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

func (s *Session) set(target, value string) error {
	panel, field, ok := strings.Cut(target, ".")
	if !ok {
		return fmt.Errorf("%w: set <panel>.<field> <value>", ErrUsage)
	}
	switch panel {
	case PanelSPS:
		return s.app.State.SPS.Set(field, value)
	case PanelCeBrA:
		return s.app.State.CeBrA.Set(field, value)
	case PanelICESPICE:
		return s.app.State.ICESPICE.Set(field, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPanel, panel)
	}
}

func (s *Session) plot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()
	return RenderChart(f, s.app.State, s.params)
}

func (s *Session) save(ctx context.Context) error {
	if err := s.app.Save(ctx); err != nil {
		log.WithError(err).Error("Failed to save state")
		return err
	}
	s.lastSave = s.now()
	return nil
}

// checkpoint saves when the autosave interval has passed since the last
// save. Failures are logged and the session goes on.
func (s *Session) checkpoint(ctx context.Context) {
	if s.autosave <= 0 || s.now().Sub(s.lastSave) < s.autosave {
		return
	}
	if err := s.save(ctx); err == nil {
		log.Debug("Checkpoint saved")
	}
}

// Help describes the input commands and the editable fields of each panel.
func Help() string {
	var b strings.Builder
	b.WriteString("commands:\n")
	b.WriteString("  set <panel>.<field> <value>  edit a field\n")
	b.WriteString("  add                          add a CeBrA detector\n")
	b.WriteString("  remove <index>               remove a CeBrA detector\n")
	b.WriteString("  preset <name>                replace CeBrA detectors with " + strings.Join(entity.Presets(), ", ") + "\n")
	b.WriteString("                               (" + entity.ProvisionalNote + ")\n")
	b.WriteString("  show|hide <panel>            toggle a panel\n")
	b.WriteString("  save | reset | plot <file.html> | help | quit\n")
	b.WriteString("fields:\n")
	for _, p := range []struct {
		panel  string
		fields []string
	}{
		{PanelSPS, spectrometer.Fields()},
		{PanelCeBrA, detectorarray.Fields()},
		{PanelICESPICE, conversion.Fields()},
	} {
		b.WriteString("  " + p.panel + ": " + strings.Join(p.fields, ", ") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
