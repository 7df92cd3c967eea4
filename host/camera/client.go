package camera

import (
	"fmt"
	"io"

	"gbcam/core"
	"gbcam/protocol"
)

// Client sends register commands to the camera. The device never answers;
// the effect shows up in the following frames.
type Client struct {
	w io.Writer
}

// NewClient creates a client writing commands to w
func NewClient(w io.Writer) *Client {
	return &Client{w: w}
}

// UploadRegisters writes all eight register bytes and restarts acquisition
func (c *Client) UploadRegisters(regs core.Registers) error {
	return c.UploadRaw(regs.Raw())
}

// UploadRaw writes raw register bytes and restarts acquisition
func (c *Client) UploadRaw(raw core.RawRegisters) error {
	return c.send(protocol.EncodeRegisterUpload(raw))
}

// WriteRegister overwrites one register byte. It takes effect on the next restart.
func (c *Client) WriteRegister(offset, value byte) error {
	return c.send(protocol.EncodeWriteRegister(offset, value))
}

// ResetRegisters restores the device defaults. It takes effect on the next restart.
func (c *Client) ResetRegisters() error {
	return c.send([]byte{protocol.OpResetRegisters})
}

// Restart reconfigures the sensor from the device register file
func (c *Client) Restart() error {
	return c.send([]byte{protocol.OpRestart})
}

func (c *Client) send(cmd []byte) error {
	n, err := c.w.Write(cmd)
	if err != nil {
		return fmt.Errorf("camera: command write failed: %w", err)
	}
	if n != len(cmd) {
		return fmt.Errorf("camera: short command write (%d of %d bytes)", n, len(cmd))
	}
	return nil
}
