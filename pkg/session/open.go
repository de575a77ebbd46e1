package session

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener navigates the user's browser to a URL.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// SystemOpener hands the URL to the platform's default handler.
type SystemOpener struct{}

func (SystemOpener) Open(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("session: open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, url string) error

func (f OpenerFunc) Open(ctx context.Context, url string) error {
	return f(ctx, url)
}
