// Package shell provides the ishell backed interactive shell over a
// delay generator controller.
package shell

import (
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/danielh186/Pico-Pulse-Generator/pkg/delay"
)

// Shell wraps an ishell instance bound to one controller.
type Shell struct {
	Interactive bool

	Shell *ishell.Shell
	Ctl   *delay.Controller
}

const shellKey = "$shell"

var (
	// flags

	evalOnly bool

	// commands
	commands = []*ishell.Cmd{
		&SetCmd,
		&GetCmd,
		&ParamsCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// New creates a new shell over an open controller.
func New(ctl *delay.Controller) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Ctl:         ctl,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt("delay > ")
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Run runs the shell. With args it processes them as a single command.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// SetCmd sets parameters as one batch.
	SetCmd = ishell.Cmd{
		Name:    "set",
		Aliases: []string{"s"},
		Help:    "PARAM=VALUE [PARAM=VALUE ...]",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(fmt.Errorf("PARAM=VALUE required"))
				return
			}
			var settings delay.Settings
			for _, item := range c.Args {
				s, err := delay.ParseSetting(item)
				if err != nil {
					c.Err(err)
					return
				}
				settings = append(settings, s)
			}
			if err := ShellFrom(c).Ctl.SetParameters(settings); err != nil {
				c.Err(err)
				return
			}
			for _, s := range settings {
				c.Printf("Set %s = %d\n", s.Param, s.Value)
			}
		},
	}

	// GetCmd reads parameters, all of them without args.
	GetCmd = ishell.Cmd{
		Name:    "get",
		Aliases: []string{"g"},
		Help:    "[PARAM ...]",
		Func: func(c *ishell.Context) {
			params := delay.Params()
			if len(c.Args) > 0 {
				params = params[:0]
				for _, name := range c.Args {
					p, err := delay.ParseParam(name)
					if err != nil {
						c.Err(err)
						return
					}
					params = append(params, p)
				}
			}
			ctl := ShellFrom(c).Ctl
			for _, p := range params {
				val, err := ctl.GetParameter(p)
				if err != nil {
					c.Err(err)
					return
				}
				c.Printf("%s = %d\n", p, val)
			}
		},
	}

	// ParamsCmd prints the constraint table.
	ParamsCmd = ishell.Cmd{
		Name:    "params",
		Aliases: []string{"p"},
		Help:    "",
		Func: func(c *ishell.Context) {
			for _, p := range delay.Params() {
				con, _ := delay.ConstraintOf(p)
				c.Printf("%-8s code=%c range=[%d, %d] step=%d\n",
					p, con.Code, con.Min, con.Max, con.Step)
			}
		},
	}
)
