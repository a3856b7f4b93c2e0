// Package runtime provides application runtime context for Habitual.
package runtime

import (
	"os"

	"github.com/manav03panchal/habitual/internal/dates"
	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/storage"
)

// EnvToday overrides the current date, mainly for scripting and tests.
const EnvToday = "HABITUAL_TODAY"

// Context holds the application runtime context.
type Context struct {
	StorePath string
	Today     string
	Formatter *output.Formatter

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	StorePath string
	Today     string
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New creates a new runtime context. The store path resolves flag over
// environment over the XDG default; today resolves flag over environment
// over the wall clock (UTC).
func New(opts Options) (*Context, error) {
	today := opts.Today
	if today == "" {
		today = os.Getenv(EnvToday)
	}
	if today == "" {
		today = dates.Today()
	}
	if err := dates.Validate(today, "today"); err != nil {
		return nil, err
	}

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	if formatter.ColorMode != output.ColorNever {
		formatter.ColorMode = opts.ColorMode
	}

	return &Context{
		StorePath: storage.ResolvePath(opts.StorePath),
		Today:     today,
		Formatter: formatter,
		Debug:     opts.Debug,
	}, nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// Debugf prints debug output if debug mode is enabled.
func (c *Context) Debugf(format string, args ...any) {
	if c.Debug {
		c.Formatter.Printf("[DEBUG] "+format+"\n", args...)
	}
}
