// Package bridge exposes a delay generator on an MQTT broker.
package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang/glog"

	"github.com/danielh186/Pico-Pulse-Generator/pkg/delay"
)

// Device is the controller surface the bridge drives.
type Device interface {
	SetParameters(delay.Settings) error
	GetParameter(delay.Param) (int64, error)
}

// Bridge forwards set/get requests from the broker to the device and
// publishes reply lines. Requests are handled one at a time; the serial
// link allows a single in-flight command.
//
// Topics (relative to the queue prefix):
//
//	<id>/set     payload PARAM=VALUE [PARAM=VALUE ...]
//	<id>/get     payload PARAM
//	<id>/result  reply: OK, PARAM = value, or ERR <message>
type Bridge struct {
	Queue  *Queue
	Device Device
	ID     string

	reqCh chan request
}

type request struct {
	op      string
	payload string
}

// New creates a bridge for a device identified by id on the broker.
func New(q *Queue, dev Device, id string) *Bridge {
	return &Bridge{
		Queue:  q,
		Device: dev,
		ID:     id,
		reqCh:  make(chan request, 16),
	}
}

// Run connects, subscribes and serves requests until ctx is canceled.
func (b *Bridge) Run(ctx context.Context) error {
	if err := b.Queue.Connect(); err != nil {
		return err
	}
	defer b.Queue.Close()

	for _, op := range []string{"set", "get"} {
		op := op
		err := b.Queue.Sub(b.ID+"/"+op, func(topic string, payload []byte) {
			select {
			case b.reqCh <- request{op: op, payload: string(payload)}:
			default:
				glog.Warningf("%s request dropped, queue full", op)
			}
		})
		if err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-b.reqCh:
			reply := b.handle(req)
			glog.V(1).Infof("%s %q -> %q", req.op, req.payload, reply)
			if err := b.Queue.Pub(b.ID+"/result", []byte(reply)); err != nil {
				glog.Errorf("publish result: %v", err)
			}
		}
	}
}

// handle executes one request and renders the reply line.
func (b *Bridge) handle(req request) string {
	switch req.op {
	case "set":
		var settings delay.Settings
		for _, item := range strings.Fields(req.payload) {
			s, err := delay.ParseSetting(item)
			if err != nil {
				return "ERR " + err.Error()
			}
			settings = append(settings, s)
		}
		if len(settings) == 0 {
			return "ERR empty set request"
		}
		if err := b.Device.SetParameters(settings); err != nil {
			return "ERR " + err.Error()
		}
		return "OK"
	case "get":
		p, err := delay.ParseParam(strings.TrimSpace(req.payload))
		if err != nil {
			return "ERR " + err.Error()
		}
		val, err := b.Device.GetParameter(p)
		if err != nil {
			return "ERR " + err.Error()
		}
		return fmt.Sprintf("%s = %d", p, val)
	}
	return "ERR unknown request " + req.op
}
