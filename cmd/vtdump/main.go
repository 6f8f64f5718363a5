// Command vtdump spawns a command on a pseudo-terminal, feeds its output
// through vtterm's parser and screen model, and prints the resulting
// character-cell display once the command exits.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"github.com/spf13/cobra"

	"github.com/vtcore/vtterm"
)

func main() {
	var lines, columns int

	root := &cobra.Command{
		Use:   "vtdump -- <command> [args...]",
		Short: "Run a command on a PTY and dump the resulting terminal screen",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, lines, columns)
		},
	}
	root.Flags().IntVar(&lines, "lines", 24, "screen height")
	root.Flags().IntVar(&columns, "columns", 80, "screen width")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, lines, columns int) error {
	c := exec.Command(args[0], args[1:]...)

	f, err := pty.Start(c)
	if err != nil {
		return fmt.Errorf("vtdump: starting pty: %w", err)
	}
	defer f.Close()

	screen := vtterm.NewScreen(lines, columns, vtterm.WithResponseWriter(f))
	stream := vtterm.NewStream(screen)
	bs := vtterm.NewByteStream(stream)

	buf := make([]byte, 4096)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			bs.Feed(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				break
			}
			break
		}
	}

	_ = c.Wait()

	for _, row := range screen.Display() {
		fmt.Println(row)
	}
	return nil
}
