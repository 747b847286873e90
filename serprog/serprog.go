// Package serprog drives a serial-attached SPI programmer bridge and
// exposes it as an s25f.Transport.
package serprog

import (
	"syscall"
	"time"

	"github.com/piotrjaromin/gpio"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.bug.st/serial"

	"github.com/synthread/go-s25f/s25f"
)

var DefaultBaud = 115200
var DefaultTTY = "/dev/ttyS1"
var DefaultTimeout = 5 * time.Second

const (
	bACK byte = 0x06
	bNAK byte = 0x15

	cmdSyncNop byte = 0x10
	cmdSPIOp   byte = 0x13
)

var ErrTimeout = errors.New("timed out reading from programmer")
var ErrClosed = errors.New("serial port is closed")
var ErrNAK = errors.New("programmer rejected command")
var ErrBadSync = errors.New("unexpected response to sync")

// Config defines configuration for communicating with the programmer
// bridge
type Config struct {
	TTY  string
	Baud int

	// PowerGPIO drives the flash socket power rail. Zero leaves power
	// management to the board.
	PowerGPIO int

	// Timeout bounds each read from the bridge.
	Timeout time.Duration
}

// Bridge represents a serial-attached SPI programmer that can be
// issued flash command frames
type Bridge struct {
	config *Config

	pinPower *gpio.Pin

	port serial.Port
	rxCh chan byte
}

var _ s25f.Transport = (*Bridge)(nil)

// NewBridge will create a new reference to a programmer bridge
func NewBridge(c *Config) *Bridge {
	if c == nil {
		c = &Config{}
	}
	if c.TTY == "" {
		c.TTY = DefaultTTY
	}
	if c.Baud <= 0 {
		c.Baud = DefaultBaud
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	return &Bridge{config: c}
}

// Open will connect to the bridge, power the socket if a power pin is
// configured, and perform the sync handshake
func (b *Bridge) Open() (err error) {
	if b.config.PowerGPIO > 0 {
		if err = b.powerCycle(); err != nil {
			return errors.Wrap(err, "could not power the socket")
		}
	}

	b.port, err = serial.Open(b.config.TTY, &serial.Mode{
		BaudRate: b.config.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return errors.Wrap(err, "could not open serial")
	}

	b.rxCh = make(chan byte, 64)
	go b.rx()

	if err = errors.Wrap(b.syncNop(), "could not sync with programmer"); err != nil {
		b.Close()
		return
	}

	logrus.Debug("programmer open")

	return nil
}

// Close will close the connection and power down the socket
func (b *Bridge) Close() error {
	if b.port != nil {
		b.port.Close()
		b.port = nil
	}

	if b.pinPower != nil {
		b.pinPower.Low()
		b.pinPower.Cleanup()
		b.pinPower = nil
	}

	logrus.Debug("programmer close")

	return nil
}

func (b *Bridge) IsOpen() bool {
	return b.port != nil
}

// powerCycle will drop and reapply the socket power rail so the chip
// starts from a known state
func (b *Bridge) powerCycle() (err error) {
	pin, err := gpio.NewOutput(uint(b.config.PowerGPIO), false)
	if err != nil {
		return
	}
	b.pinPower = &pin

	time.Sleep(10 * time.Millisecond)
	b.pinPower.High()
	time.Sleep(10 * time.Millisecond)

	return
}

// rx is the loop that will forever read from the port and write the
// incoming bytes to the rx chan
func (b *Bridge) rx() {
	buf := make([]byte, 64)

	defer b.Close()

	b.port.SetReadTimeout(1 * time.Millisecond)

	for {
		n, err := b.port.Read(buf)
		if err != nil {

			// don't write out if we're just complaining about it being closed
			if perr, ok := err.(*serial.PortError); ok {
				if perr.Code() == serial.PortClosed {
					b.port = nil
					return
				}
			}

			if errors.Is(err, syscall.EBADF) {
				return
			}

			logrus.Error("rx err: ", err.Error())
			return
		}

		for _, c := range buf[:n] {
			b.rxCh <- c
		}
		if n > 0 {
			logrus.Debugf("programmer rx: %x", buf[:n])
		}
	}
}

// write will write the specified bytes to the bridge
func (b *Bridge) write(bs []byte) (err error) {
	if !b.IsOpen() {
		return ErrClosed
	}

	_, err = b.port.Write(bs)
	if err != nil {
		return
	}
	logrus.Debugf("programmer tx: %x", bs)

	return
}

// readN will read exactly N bytes from the rx chan
func (b *Bridge) readN(n int) ([]byte, error) {
	if !b.IsOpen() {
		return nil, ErrClosed
	}

	bs := make([]byte, n)

	for i := 0; i < n; i++ {
		select {
		case <-time.After(b.config.Timeout):
			return nil, ErrTimeout
		case c := <-b.rxCh:
			bs[i] = c
		}
	}

	return bs, nil
}

// syncNop performs the handshake that flushes the command stream; the
// bridge answers NAK then ACK.
func (b *Bridge) syncNop() error {
	if err := b.write([]byte{cmdSyncNop}); err != nil {
		return err
	}

	resp, err := b.readN(2)
	if err != nil {
		return err
	}
	if resp[0] != bNAK || resp[1] != bACK {
		return ErrBadSync
	}

	return nil
}

// spiOpFrame builds the bridge frame for one SPI operation: opcode,
// 24-bit write and read lengths little-endian, then the write bytes.
func spiOpFrame(tx []byte, rx int) []byte {
	frame := make([]byte, 0, 7+len(tx))
	frame = append(frame, cmdSPIOp)
	frame = append(frame, byte(len(tx)), byte(len(tx)>>8), byte(len(tx)>>16))
	frame = append(frame, byte(rx), byte(rx>>8), byte(rx>>16))
	return append(frame, tx...)
}

// spiOp runs one SPI operation and returns the response bytes.
func (b *Bridge) spiOp(tx []byte, rx int) ([]byte, error) {
	if err := b.write(spiOpFrame(tx, rx)); err != nil {
		return nil, err
	}

	status, err := b.readN(1)
	if err != nil {
		return nil, err
	}
	if status[0] != bACK {
		return nil, ErrNAK
	}

	if rx == 0 {
		return nil, nil
	}
	return b.readN(rx)
}

// Command issues a single command frame and reads back its response.
func (b *Bridge) Command(cmd s25f.Command) ([]byte, error) {
	return b.spiOp(cmd.Tx, cmd.Rx)
}

// Chain issues the commands back to back. The wire protocol has no
// multi-op primitive; the chip's write-enable latch survives between
// ops as long as nothing else reaches the bus, which holds because the
// bridge serializes everything onto one port and the driver requires
// the caller to be the sole issuer.
func (b *Bridge) Chain(chain s25f.Chain) error {
	for _, cmd := range chain {
		if _, err := b.spiOp(cmd.Tx, cmd.Rx); err != nil {
			return err
		}
	}
	return nil
}
