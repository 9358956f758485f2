// Package terminal writes diagnostics and prompts to the operator, keeping them off standard output.
package terminal

import (
	"io"
	"log"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type (
	Console struct {
		dest   io.Writer
		logger *log.Logger
		prompt lipgloss.Style
		mux    sync.Mutex
	}
)

const (
	infoLevel  = "INFO "
	errorLevel = "ERROR "
)

func NewConsole(dest io.Writer, prefix string, flag int) *Console {
	c := Console{dest: dest}

	c.logger = log.New(dest, prefix, flag)

	c.prompt = lipgloss.NewRenderer(dest).NewStyle().Bold(true)

	return &c
}

func (c *Console) Infof(format string, v ...any) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.logger.Printf(infoLevel+format, v...)
}

func (c *Console) Errorf(format string, v ...any) {
	c.mux.Lock()
	defer c.mux.Unlock()

	c.logger.Printf(errorLevel+format, v...)
}

// Prompt writes msg on a line of its own. It is styled only when dest is a color terminal.
func (c *Console) Prompt(msg string) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	_, err := io.WriteString(c.dest, c.prompt.Render(msg)+"\n")

	return err
}
