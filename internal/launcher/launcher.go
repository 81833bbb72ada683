package launcher

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNoViewer is returned when every launch path failed
var ErrNoViewer = errors.New("no viewer could be launched")

// launchPath defines a single way to launch a viewer
type launchPath struct {
	path      string   // Command path: "mpv", "vlc", or "open-a:AppName"
	openFlags []string // For "open-a:" paths only, flags for the macOS open command
}

// viewerConfig defines platform-specific launch configurations for a viewer
type viewerConfig struct {
	loopArgs  []string                // Arguments that keep a GIF looping
	platforms map[string][]launchPath // Platform -> launch paths to try in order
}

// viewers registry
var viewers = map[string]viewerConfig{
	"mpv": {
		loopArgs: []string{"--loop-file=inf"},
		platforms: map[string][]launchPath{
			"darwin":  {{path: "mpv"}},
			"linux":   {{path: "mpv"}},
			"windows": {{path: "mpv"}},
		},
	},
	"vlc": {
		loopArgs: []string{"--loop"},
		platforms: map[string][]launchPath{
			"darwin": {
				{path: "vlc"},
				{path: "open-a:VLC"},
			},
			"linux":   {{path: "vlc"}},
			"windows": {{path: "vlc"}},
		},
	},
	"iina": {
		loopArgs: []string{"--mpv-loop-file=inf"},
		platforms: map[string][]launchPath{
			"darwin": {
				{path: "open-a:IINA", openFlags: []string{"-n"}},
			},
		},
	},
	"celluloid": {
		loopArgs: []string{"--mpv-loop-file=inf"},
		platforms: map[string][]launchPath{
			"linux": {{path: "celluloid"}},
		},
	},
	"feh": {
		platforms: map[string][]launchPath{
			"linux": {{path: "feh"}},
		},
	},
}

// candidateViewers defines the preferred viewer order for each platform
var candidateViewers = map[string][]string{
	"darwin":  {"iina", "mpv", "vlc"},
	"linux":   {"mpv", "celluloid", "vlc", "feh"},
	"windows": {"mpv", "vlc"},
}

// invocation is one attempt to open a URL
type invocation struct {
	viewer string
	name   string
	args   []string
	lookup bool // Skip the attempt when name is not in PATH
}

// Launcher opens GIF URLs in an external viewer
type Launcher struct {
	command string   // configured viewer command, empty to auto-detect
	args    []string // additional arguments for the viewer
	logger  *slog.Logger

	goos     string
	lookPath func(file string) (string, error)
	start    func(name string, args ...string) error
}

// New creates a Launcher. An empty command auto-detects a viewer and falls
// back to the system default handler.
func New(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		start:    startCommand,
	}
}

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// Open opens url in the configured viewer, a detected viewer, or the system
// default, in that order
func (l *Launcher) Open(url string) error {
	if url == "" {
		return errors.New("no URL to open")
	}

	var lastErr error
	for _, inv := range l.plan(url) {
		if inv.lookup {
			if _, err := l.lookPath(inv.name); err != nil {
				l.logger.Debug("launch path not available", "viewer", inv.viewer, "path", inv.name)
				lastErr = err
				continue
			}
		}
		if err := l.start(inv.name, inv.args...); err != nil {
			l.logger.Debug("launch failed", "viewer", inv.viewer, "path", inv.name, "error", err)
			lastErr = err
			continue
		}
		l.logger.Info("opened gif", "viewer", inv.viewer, "command", inv.name, "url", url)
		return nil
	}

	if lastErr == nil {
		return ErrNoViewer
	}
	return fmt.Errorf("%w: %v", ErrNoViewer, lastErr)
}

// plan returns the invocations Open tries, in order
func (l *Launcher) plan(url string) []invocation {
	if l.command != "" {
		return l.configured(url)
	}

	var plan []invocation
	candidates, ok := candidateViewers[l.goos]
	if !ok {
		candidates = candidateViewers["linux"]
	}
	for _, name := range candidates {
		viewer := viewers[name]
		for _, lp := range viewer.platforms[l.goos] {
			plan = append(plan, viewerInvocation(name, lp, viewer.loopArgs, url))
		}
	}
	return append(plan, l.systemDefault(url))
}

// configured returns the user's viewer, plus "open -a" on macOS for GUI apps
// that are not in PATH
func (l *Launcher) configured(url string) []invocation {
	args := append([]string{}, l.args...)
	name := viewerName(l.command)

	plan := []invocation{{
		viewer: name,
		name:   l.command,
		args:   append(append([]string{}, args...), url),
		lookup: l.goos == "darwin",
	}}

	if l.goos == "darwin" {
		var openFlags []string
		for _, lp := range viewers[name].platforms["darwin"] {
			if strings.HasPrefix(lp.path, "open-a:") {
				openFlags = lp.openFlags
				break
			}
		}
		plan = append(plan, invocation{
			viewer: name,
			name:   "open",
			args:   openAppArgs(l.command, openFlags, args, url),
		})
	}
	return plan
}

// systemDefault opens the URL using the system default handler
func (l *Launcher) systemDefault(url string) invocation {
	switch l.goos {
	case "darwin":
		return invocation{viewer: "default", name: "open", args: []string{url}}
	case "windows":
		return invocation{viewer: "default", name: "cmd", args: []string{"/c", "start", "", url}}
	default:
		return invocation{viewer: "default", name: "xdg-open", args: []string{url}, lookup: true}
	}
}

func viewerInvocation(viewer string, lp launchPath, loopArgs []string, url string) invocation {
	if app, ok := strings.CutPrefix(lp.path, "open-a:"); ok {
		return invocation{viewer: viewer, name: "open", args: openAppArgs(app, lp.openFlags, loopArgs, url)}
	}
	args := append(append([]string{}, loopArgs...), url)
	return invocation{viewer: viewer, name: lp.path, args: args, lookup: true}
}

// openAppArgs builds arguments for macOS "open -a"
func openAppArgs(app string, openFlags, viewerArgs []string, url string) []string {
	args := append([]string{}, openFlags...)
	args = append(args, "-a", app)
	if len(viewerArgs) > 0 {
		args = append(args, "--args")
		args = append(args, viewerArgs...)
	}
	return append(args, url)
}

// viewerName normalizes a command path to a registry key
func viewerName(command string) string {
	base := filepath.Base(command)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}
