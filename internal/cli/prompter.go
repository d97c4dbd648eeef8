package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/the-roast-must-rise/internal/model"
	"github.com/Veraticus/the-roast-must-rise/internal/preferences"
	"github.com/schollz/progressbar/v3"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Prompter asks for the raw checkpoint text one stage at a time.
type Prompter struct {
	writer      io.Writer
	reader      *bufio.Reader
	progressBar *progressbar.ProgressBar
	lines       chan lineResult
}

type lineResult struct {
	err   error
	value string
}

// NewPrompter creates a prompter reading from reader and writing to writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: bufio.NewReader(reader),
		writer: writer,
	}
}

// PromptInputs collects temperature and time text for every stage in order.
// A blank temperature for a stage in defaults is replaced by that default.
func (p *Prompter) PromptInputs(ctx context.Context, defaults map[model.Stage]float64) (model.RawInputs, error) {
	if _, err := fmt.Fprintln(p.writer, FormatTitle("Roast checkpoints")); err != nil {
		return nil, err
	}

	p.startProgress()
	raw := make(model.RawInputs, model.StageCount)

	for _, stage := range model.Stages {
		label := stage.String() + " temperature (°C)"
		def, hasDefault := defaults[stage]
		if hasDefault {
			label += fmt.Sprintf(" [%s]", preferences.FormatTemperature(def))
		}

		temp, err := p.ask(ctx, label)
		if err != nil {
			return nil, err
		}
		if temp == "" && hasDefault {
			temp = preferences.FormatTemperature(def)
		}

		tm, err := p.ask(ctx, stage.String()+" time (MM:SS)")
		if err != nil {
			return nil, err
		}

		raw[stage] = model.RawCheckpointInput{Temperature: temp, Time: tm}
		p.advanceProgress()
	}

	return raw, nil
}

func (p *Prompter) ask(ctx context.Context, label string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
		return "", err
	}
	return p.readLine(ctx)
}

// readLine reads one line while respecting ctx. A read still in flight when
// ctx is cancelled is picked up by the next call.
func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if p.lines == nil {
		p.lines = make(chan lineResult, 1)
		go func() {
			line, err := p.reader.ReadString('\n')
			p.lines <- lineResult{value: line, err: err}
		}()
	}

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-p.lines:
		p.lines = nil
		if res.err != nil && !(errors.Is(res.err, io.EOF) && res.value != "") {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

func (p *Prompter) startProgress() {
	p.progressBar = progressbar.NewOptions(model.StageCount,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription("[cyan]Stages entered[reset]"),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func (p *Prompter) advanceProgress() {
	if p.progressBar == nil {
		return
	}
	if err := p.progressBar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
	if _, err := fmt.Fprintln(p.writer); err != nil {
		slog.Warn("Failed to write newline after progress bar", "error", err)
	}
}
