package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/bowlrms/desktop/pkg/connection"
)

// errExhausted is returned by check when every attempt failed.
var errExhausted = errors.New("server unreachable after all attempts")

var checkVerbose bool

func init() {
	cmdCheck.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "Log to stderr while checking")
}

var cmdCheck = &cobra.Command{
	Use:   "check",
	Short: "Check that the BowlRMS server is reachable",
	Long:  `Runs the same connection attempts as the window without opening it. Exits non-zero once every attempt has failed.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var console io.Writer
		if checkVerbose {
			console = os.Stderr
		}
		env, err := loadEnvironment(console)
		if err != nil {
			return err
		}
		defer env.Close()

		return runCheck(cmd.Context(), env, cmd.OutOrStdout(), connection.Policy{})
	},
}

func runCheck(ctx context.Context, env *environment, out io.Writer, policy connection.Policy) error {
	target := resolveTarget(ctx, env)

	spin := spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(out))
	display := newTerminalDisplay(spin)

	s := newSession(sessionConfig{
		Target:    target,
		Policy:    policy,
		Display:   display,
		Presenter: connection.PresenterFunc(func() {}),
		Logger:    env.logger.Logger,
	})

	spin.Start()
	s.Start(ctx)

	var err error
	select {
	case err = <-display.result:
	case <-ctx.Done():
		err = ctx.Err()
	}
	s.Stop()
	spin.Stop()

	if err != nil {
		if last := display.Last(); last.Text != "" {
			fmt.Fprintf(out, "%s: %v (%s)\n", target, err, last.Text)
		} else {
			fmt.Fprintf(out, "%s: %v\n", target, err)
		}
		return err
	}
	fmt.Fprintf(out, "%s is reachable\n", target)
	return nil
}

// terminalDisplay shows splash status as a spinner suffix and reports the
// first conclusive result.
type terminalDisplay struct {
	spin   *spinner.Spinner
	result chan error

	mu   sync.Mutex
	last connection.Status
}

func newTerminalDisplay(spin *spinner.Spinner) *terminalDisplay {
	return &terminalDisplay{
		spin:   spin,
		result: make(chan error, 1),
	}
}

func (d *terminalDisplay) ShowStatus(s connection.Status) {
	d.mu.Lock()
	d.last = s
	d.mu.Unlock()

	d.spin.Lock()
	d.spin.Suffix = " " + s.Text
	d.spin.Unlock()

	if s.Phase == connection.PhaseSucceeded {
		d.finish(nil)
	}
}

// ShowRetry reports exhaustion; the headless check never retries.
func (d *terminalDisplay) ShowRetry(visible bool) {
	if visible {
		d.finish(errExhausted)
	}
}

func (d *terminalDisplay) finish(err error) {
	select {
	case d.result <- err:
	default:
	}
}

func (d *terminalDisplay) Last() connection.Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}
