package main

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"pkt.systems/chatmd/materialize"
)

const commandTimeout = 30 * time.Second

// commandTypesetter runs argv once per formula with the LaTeX source on
// stdin. "--display-mode" is appended for block formulas.
func commandTypesetter(argv []string) materialize.TypesetterFunc {
	return func(latex string, opts materialize.Options) (string, error) {
		args := append([]string(nil), argv[1:]...)
		if opts.DisplayMode {
			args = append(args, "--display-mode")
		}
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		return runCommand(ctx, argv[0], args, latex)
	}
}

// commandDiagramRenderer runs argv once per diagram with the diagram source
// on stdin and reads SVG from stdout.
func commandDiagramRenderer(argv []string) materialize.DiagramRendererFunc {
	return func(ctx context.Context, _ string, source string) (materialize.Diagram, error) {
		ctx, cancel := context.WithTimeout(ctx, commandTimeout)
		defer cancel()
		svg, err := runCommand(ctx, argv[0], argv[1:], source)
		if err != nil {
			return materialize.Diagram{}, err
		}
		return materialize.Diagram{SVG: svg}, nil
	}
}

func runCommand(ctx context.Context, name string, args []string, input string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
