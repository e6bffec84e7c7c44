// Package serialport provides the serial link to the delay generator.
package serialport

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.bug.st/serial"
)

// Defaults for Config.
const (
	DefaultPort        = "/dev/ttyACM0"
	DefaultBaud        = 115200
	DefaultReadTimeout = time.Second
)

// ErrReadTimeout indicates no response arrived within the read timeout.
var ErrReadTimeout = errors.New("read timeout")

// Config describes the serial link.
type Config struct {
	Port        string
	Baud        int
	ReadTimeout time.Duration
}

var defaultConfig = Config{
	Port:        DefaultPort,
	Baud:        DefaultBaud,
	ReadTimeout: DefaultReadTimeout,
}

func init() {
	if val := os.Getenv("DELAY_PORT"); val != "" {
		defaultConfig.Port = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial device path")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate")
	flag.DurationVar(&defaultConfig.ReadTimeout, "timeout", defaultConfig.ReadTimeout, "Response read timeout")
}

// Default gets the config populated from flags and environment.
func Default() Config {
	return defaultConfig
}

// port is the subset of serial.Port used here.
type port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetReadTimeout(d time.Duration) error
}

// openPort is overridable in tests.
var openPort = func(name string, mode *serial.Mode) (port, error) {
	return serial.Open(name, mode)
}

// Conn is an open serial connection. It implements delay.Conn.
type Conn struct {
	p port
}

// Open opens the serial device described by cfg.
func Open(cfg Config) (*Conn, error) {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	p, err := openPort(cfg.Port, &serial.Mode{BaudRate: cfg.Baud})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Port, err)
	}
	if err = p.SetReadTimeout(cfg.ReadTimeout); err != nil {
		p.Close()
		return nil, err
	}
	return &Conn{p: p}, nil
}

// WriteString sends a command line.
func (c *Conn) WriteString(s string) error {
	_, err := c.p.Write([]byte(s))
	return err
}

// ReadLine reads one response line, CR/LF stripped. A zero-byte read means
// the port read timeout elapsed (go.bug.st/serial semantics).
func (c *Conn) ReadLine() (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := c.p.Read(buf)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return "", ErrReadTimeout
		}
		switch buf[0] {
		case '\n':
			return b.String(), nil
		case '\r':
			// skip
		default:
			b.WriteByte(buf[0])
		}
	}
}

// Close releases the port.
func (c *Conn) Close() error {
	return c.p.Close()
}
