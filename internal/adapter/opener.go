package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener opens web URLs (posters, IMDb pages) in an external program
type Opener struct {
	command string   // configured command, empty for system default
	args    []string // additional arguments placed before the URL
	logger  *slog.Logger

	// start runs the command without waiting; replaced in tests
	start func(name string, args ...string) error
}

// NewOpener creates an Opener. An empty command uses the platform default.
func NewOpener(command string, args []string, logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{
		command: command,
		args:    args,
		logger:  logger,
		start:   startCommand,
	}
}

// Open launches rawURL. Only http and https URLs are accepted.
func (o *Opener) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("refusing to open %q: not a web URL", rawURL)
	}

	name, args := o.commandFor(u.String())
	o.logger.Info("opening url", "command", name, "url", u.String())

	if err := o.start(name, args...); err != nil {
		o.logger.Error("failed to open url", "command", name, "error", err)
		return fmt.Errorf("failed to open %s: %w", u.Host, err)
	}
	return nil
}

// commandFor resolves the program and arguments used to open target
func (o *Opener) commandFor(target string) (string, []string) {
	if o.command != "" {
		args := append([]string{}, o.args...)
		return o.command, append(args, target)
	}

	switch runtime.GOOS {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{target}
	}
}

func startCommand(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start() // Start async, don't wait
}
