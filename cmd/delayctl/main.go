package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/danielh186/Pico-Pulse-Generator/pkg/delay"
	"github.com/danielh186/Pico-Pulse-Generator/pkg/delay/serialport"
	"github.com/danielh186/Pico-Pulse-Generator/pkg/run"
)

type listFlag []string

func (f *listFlag) String() string {
	return strings.Join(*f, " ")
}

func (f *listFlag) Set(val string) error {
	*f = append(*f, val)
	return nil
}

var (
	setItems listFlag
	getItems listFlag
)

func init() {
	serialport.SetupFlags()
	flag.Var(&setItems, "set", "Set a parameter, PARAM=VALUE with VALUE in ns or count. Repeatable.")
	flag.Var(&getItems, "get", "Get a parameter by name. Repeatable.")
}

func main() {
	flag.Parse()
	log.SetFlags(0)
	os.Exit(realMain())
}

func realMain() int {
	if len(setItems) == 0 && len(getItems) == 0 {
		fmt.Println("No action specified. Use -set or -get.")
		return 0
	}

	conn, err := serialport.Open(serialport.Default())
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	ctl := delay.NewController(conn)
	defer ctl.Close()

	code := 0
	if len(setItems) > 0 {
		var settings delay.Settings
		for _, item := range setItems {
			s, err := delay.ParseSetting(item)
			if err != nil {
				log.Printf("Error: %v", err)
				code = 1
				continue
			}
			settings = append(settings, s)
		}
		if len(settings) > 0 {
			if err := ctl.SetParameters(settings); err != nil {
				log.Printf("Error: %v", err)
				code = 1
			} else {
				for _, s := range settings {
					fmt.Printf("Set %s = %d\n", s.Param, s.Value)
				}
			}
		}
	}

	if len(getItems) > 0 {
		var errs run.AggregatedError
		for _, name := range getItems {
			p, err := delay.ParseParam(name)
			if err != nil {
				errs.Add(err)
				continue
			}
			val, err := ctl.GetParameter(p)
			if err != nil {
				errs.Add(err)
				continue
			}
			fmt.Printf("%s = %d\n", p, val)
		}
		if err := errs.Aggregate(); err != nil {
			log.Printf("Error: %v", err)
			code = 1
		}
	}
	return code
}
