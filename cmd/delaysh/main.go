package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"log"

	"github.com/danielh186/Pico-Pulse-Generator/pkg/delay"
	"github.com/danielh186/Pico-Pulse-Generator/pkg/delay/serialport"
	"github.com/danielh186/Pico-Pulse-Generator/pkg/shell"
)

func init() {
	serialport.SetupFlags()
}

func main() {
	flag.Parse()

	conn, err := serialport.Open(serialport.Default())
	if err != nil {
		log.Fatalln(err)
	}
	ctl := delay.NewController(conn)
	defer ctl.Close()

	shell.New(ctl).Run(flag.Args()...)
}
