package delay

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptConn records written lines and replays canned response lines.
type scriptConn struct {
	written   []string
	responses []string
	writeErr  error
	readErr   error
	closed    bool
}

func (c *scriptConn) WriteString(s string) error {
	if c.writeErr != nil {
		return c.writeErr
	}
	c.written = append(c.written, s)
	return nil
}

func (c *scriptConn) ReadLine() (string, error) {
	if c.readErr != nil {
		return "", c.readErr
	}
	if len(c.responses) == 0 {
		return "", errors.New("unexpected read")
	}
	resp := c.responses[0]
	c.responses = c.responses[1:]
	return resp, nil
}

func (c *scriptConn) Close() error {
	c.closed = true
	return nil
}

// echoConn emulates firmware that stores device units and reads them back.
type echoConn struct {
	values map[byte]int64
}

func newEchoConn() *echoConn {
	return &echoConn{values: make(map[byte]int64)}
}

func (c *echoConn) Close() error { return nil }

// exchangeLine handles one command line like the firmware main loop.
func (c *echoConn) exchangeLine(line string) string {
	fields := strings.Fields(line)
	switch fields[0] {
	case "S":
		for i := 1; i+1 < len(fields); i += 2 {
			v, _ := strconv.ParseInt(fields[i+1], 10, 64)
			c.values[fields[i][0]] = v
		}
		return "OK"
	case "G":
		return strconv.FormatInt(c.values[fields[1][0]], 10)
	}
	return "Unknown command"
}

// echoDevice wires echoConn into Conn with a one-line reply buffer.
type echoDevice struct {
	*echoConn
	reply string
}

func (d *echoDevice) WriteString(s string) error {
	d.reply = d.exchangeLine(strings.TrimSuffix(s, "\n"))
	return nil
}

func (d *echoDevice) ReadLine() (string, error) { return d.reply, nil }

func TestSetParametersEncoding(t *testing.T) {
	conn := &scriptConn{responses: []string{"OK"}}
	ctl := NewController(conn)
	err := ctl.SetParameters(Settings{
		{Offset, 100},
		{Length, 20},
		{Spacing, 40},
		{Repeats, 3},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"S o 20 l 4 s 8 r 3 \n"}, conn.written)
}

func TestSetParametersOrderPreserved(t *testing.T) {
	conn := &scriptConn{responses: []string{"OK"}}
	ctl := NewController(conn)
	err := ctl.SetParameters(Settings{{Repeats, 3}, {Offset, 100}})
	require.NoError(t, err)
	require.Equal(t, []string{"S r 3 o 20 \n"}, conn.written)
}

func TestSetParametersValidation(t *testing.T) {
	testCases := []struct {
		name     string
		settings Settings
		err      error
	}{
		{"offset misaligned", Settings{{Offset, 11}}, &AlignError{Offset, 11, 5}},
		{"offset below min", Settings{{Offset, 5}}, &RangeError{Offset, 5, 10, (1<<32 - 1) * 5}},
		{"repeats above max", Settings{{Repeats, 32}}, &RangeError{Repeats, 32, 0, 31}},
		{"unknown param", Settings{{"bogus", 1}}, &InvalidParamError{Name: "bogus"}},
		{"bad item after good one", Settings{{Offset, 10}, {Length, 11}}, &AlignError{Length, 11, 5}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conn := &scriptConn{responses: []string{"OK"}}
			ctl := NewController(conn)
			err := ctl.SetParameters(tc.settings)
			require.Equal(t, tc.err, err)
			// validate-before-send: nothing reached the device
			require.Empty(t, conn.written)
		})
	}
}

func TestSetParametersDeviceRejected(t *testing.T) {
	conn := &scriptConn{responses: []string{"ERR bad value"}}
	ctl := NewController(conn)
	err := ctl.SetParameters(Settings{{Offset, 100}})
	var rejErr *RejectError
	require.ErrorAs(t, err, &rejErr)
	require.Equal(t, "ERR bad value", rejErr.Response)
	require.Equal(t, "S o 20 ", rejErr.Command)
}

func TestGetParameter(t *testing.T) {
	conn := &scriptConn{responses: []string{"20"}}
	ctl := NewController(conn)
	val, err := ctl.GetParameter(Offset)
	require.NoError(t, err)
	require.Equal(t, int64(100), val)
	require.Equal(t, []string{"G o\n"}, conn.written)
}

func TestGetParameterInvalid(t *testing.T) {
	conn := &scriptConn{}
	ctl := NewController(conn)
	_, err := ctl.GetParameter("bogus")
	var invErr *InvalidParamError
	require.ErrorAs(t, err, &invErr)
	require.Empty(t, conn.written)
}

func TestGetParameterMalformedResponse(t *testing.T) {
	conn := &scriptConn{responses: []string{"abc"}}
	ctl := NewController(conn)
	_, err := ctl.GetParameter(Offset)
	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	require.Equal(t, "abc", respErr.Raw)
}

func TestTransportErrors(t *testing.T) {
	ioErr := errors.New("broken pipe")

	conn := &scriptConn{writeErr: ioErr}
	ctl := NewController(conn)
	err := ctl.SetParameters(Settings{{Offset, 100}})
	var trErr *TransportError
	require.ErrorAs(t, err, &trErr)
	require.Equal(t, "write", trErr.Op)
	require.ErrorIs(t, err, ioErr)

	conn = &scriptConn{readErr: ioErr}
	ctl = NewController(conn)
	_, err = ctl.GetParameter(Offset)
	require.ErrorAs(t, err, &trErr)
	require.Equal(t, "read", trErr.Op)
}

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		param Param
		value int64
	}{
		{Offset, 10},
		{Offset, 100},
		{Offset, (1<<32 - 1) * 5},
		{Length, 5},
		{Length, 635},
		{Spacing, 40},
		{Spacing, (1<<20 - 1) * 5},
		{Repeats, 0},
		{Repeats, 31},
	}
	dev := &echoDevice{echoConn: newEchoConn()}
	ctl := NewController(dev)
	for _, tc := range testCases {
		t.Run(string(tc.param)+" "+strconv.FormatInt(tc.value, 10), func(t *testing.T) {
			require.NoError(t, ctl.SetParameters(Settings{{tc.param, tc.value}}))
			val, err := ctl.GetParameter(tc.param)
			require.NoError(t, err)
			require.Equal(t, tc.value, val)
		})
	}
}

func TestControllerClose(t *testing.T) {
	conn := &scriptConn{}
	ctl := NewController(conn)
	require.NoError(t, ctl.Close())
	require.True(t, conn.closed)
}
