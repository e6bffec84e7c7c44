package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/danielh186/Pico-Pulse-Generator/pkg/bridge"
	"github.com/danielh186/Pico-Pulse-Generator/pkg/delay"
	"github.com/danielh186/Pico-Pulse-Generator/pkg/delay/serialport"
	"github.com/danielh186/Pico-Pulse-Generator/pkg/run"
)

var (
	brokerURL = "mqtt://localhost:1883/delay/"
	deviceID  string
)

func init() {
	if val := os.Getenv("DELAY_MQTT_URL"); val != "" {
		brokerURL = val
	}
	serialport.SetupFlags()
	flag.StringVar(&brokerURL, "mqtt", brokerURL, "MQTT broker URL.")
	flag.StringVar(&deviceID, "id", deviceID, "Device ID on the broker.")
}

func main() {
	flag.Parse()

	if deviceID == "" {
		deviceID = bridge.MachineID()
	}

	conn, err := serialport.Open(serialport.Default())
	if err != nil {
		glog.Exitf("open serial: %v", err)
	}
	ctl := delay.NewController(conn)

	q, err := bridge.NewQueueFromURL(brokerURL)
	if err != nil {
		glog.Exitf("broker %q: %v", brokerURL, err)
	}

	glog.Infof("serving device %s", deviceID)
	err = run.NewRunner().HandleSignals().
		Go(bridge.New(q, ctl, deviceID)).
		Wait()
	ctl.Close()
	if err != nil {
		glog.Exit(err)
	}
}
