package delay

import (
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// Conn is the byte stream to the device. The controller owns it for the
// whole session and releases it with Close.
type Conn interface {
	// WriteString sends one full command line including the newline.
	WriteString(s string) error
	// ReadLine reads one response line without the line terminator.
	ReadLine() (string, error)
	Close() error
}

// Controller validates, encodes and exchanges parameter commands with a
// delay generator over a Conn. A single command is in flight at a time;
// concurrent callers must serialize externally.
type Controller struct {
	conn Conn
}

// NewController wraps an open connection.
func NewController(conn Conn) *Controller {
	return &Controller{conn: conn}
}

// Close releases the connection.
func (c *Controller) Close() error {
	return c.conn.Close()
}

// SetParameters applies settings as a single batch. Every setting is
// validated before anything is sent; if one is invalid the whole batch is
// rejected and no bytes reach the device.
func (c *Controller) SetParameters(settings Settings) error {
	var b strings.Builder
	b.WriteString("S ")
	for _, s := range settings {
		con, err := ConstraintOf(s.Param)
		if err != nil {
			return err
		}
		if err := Validate(s.Param, s.Value); err != nil {
			return err
		}
		b.WriteByte(con.Code)
		b.WriteByte(' ')
		// exact by the alignment check above
		b.WriteString(strconv.FormatInt(s.Value/con.Step, 10))
		b.WriteByte(' ')
	}
	cmd := b.String()
	resp, err := c.exchange(cmd)
	if err != nil {
		return err
	}
	if resp != "OK" {
		return &RejectError{Response: resp, Command: cmd}
	}
	return nil
}

// GetParameter reads one parameter back in physical units.
func (c *Controller) GetParameter(p Param) (int64, error) {
	con, err := ConstraintOf(p)
	if err != nil {
		return 0, err
	}
	resp, err := c.exchange("G " + string(con.Code))
	if err != nil {
		return 0, err
	}
	raw, err := strconv.ParseInt(strings.TrimSpace(resp), 10, 64)
	if err != nil {
		return 0, &ResponseError{Raw: resp}
	}
	return raw * con.Step, nil
}

// exchange sends one command line and reads the one-line response.
func (c *Controller) exchange(cmd string) (string, error) {
	glog.V(2).Infof("send %q", cmd)
	if err := c.conn.WriteString(cmd + "\n"); err != nil {
		return "", &TransportError{Op: "write", Err: err}
	}
	resp, err := c.conn.ReadLine()
	if err != nil {
		return "", &TransportError{Op: "read", Err: err}
	}
	glog.V(2).Infof("recv %q", resp)
	return resp, nil
}
