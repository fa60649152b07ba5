package transport

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/gousb"

	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
)

const (
	defaultPacketSize = 64
	defaultTimeout    = 5 * time.Second

	// Probe command opcodes.
	cmdRegisterRead  = 0x01
	cmdRegisterWrite = 0x02
	cmdRegisterMask  = 0x03
)

// USBProbe talks the probe's framed request/response protocol over bulk
// endpoints. Register access is implemented; the probe firmware does not yet
// expose scan, bus, pin or control primitives, so those report
// EngineUnsupported rather than guessing.
type USBProbe struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	intf *gousb.Interface

	epOut *gousb.OutEndpoint
	epIn  *gousb.InEndpoint

	packetSize int
	timeout    time.Duration
}

// NewUSBProbe opens the probe with the given VID/PID and claims its
// vendor-specific bulk interface.
func NewUSBProbe(vid, pid uint16) (*USBProbe, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("transport: USB open: %w", err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("transport: probe not found (VID:0x%04X PID:0x%04X)", vid, pid)
	}

	// Auto-detach the kernel driver; failure is not fatal on all platforms.
	_ = dev.SetAutoDetach(true)

	p := &USBProbe{
		ctx:        ctx,
		dev:        dev,
		packetSize: defaultPacketSize,
		timeout:    defaultTimeout,
	}
	if err := p.claimInterface(); err != nil {
		dev.Close()
		ctx.Close()
		return nil, err
	}
	return p, nil
}

// Close releases the interface and USB context.
func (p *USBProbe) Close() error {
	if p.intf != nil {
		p.intf.Close()
	}
	if p.dev != nil {
		p.dev.Close()
	}
	if p.ctx != nil {
		return p.ctx.Close()
	}
	return nil
}

func (p *USBProbe) claimInterface() error {
	cfg, err := p.dev.Config(1)
	if err != nil {
		return fmt.Errorf("transport: USB config: %w", err)
	}

	vendorIntf := -1
	for _, intf := range cfg.Desc.Interfaces {
		if len(intf.AltSettings) > 0 && intf.AltSettings[0].Class == gousb.ClassVendorSpec {
			vendorIntf = intf.Number
			break
		}
	}
	if vendorIntf == -1 {
		vendorIntf = 0
	}

	intf, err := cfg.Interface(vendorIntf, 0)
	if err != nil {
		return fmt.Errorf("transport: claim interface %d: %w", vendorIntf, err)
	}
	p.intf = intf

	if err := p.findEndpoints(); err != nil {
		intf.Close()
		return err
	}
	return nil
}

func (p *USBProbe) findEndpoints() error {
	var outAddr, inAddr int
	for _, ep := range p.intf.Setting.Endpoints {
		if ep.TransferType != gousb.TransferTypeBulk {
			continue
		}
		switch ep.Direction {
		case gousb.EndpointDirectionOut:
			if outAddr == 0 {
				outAddr = ep.Number
			}
		case gousb.EndpointDirectionIn:
			if inAddr == 0 {
				inAddr = ep.Number
				p.packetSize = ep.MaxPacketSize
			}
		}
	}
	if outAddr == 0 {
		return fmt.Errorf("transport: bulk OUT endpoint not found")
	}
	if inAddr == 0 {
		return fmt.Errorf("transport: bulk IN endpoint not found")
	}

	epOut, err := p.intf.OutEndpoint(outAddr)
	if err != nil {
		return fmt.Errorf("transport: open OUT endpoint: %w", err)
	}
	p.epOut = epOut

	epIn, err := p.intf.InEndpoint(inAddr)
	if err != nil {
		return fmt.Errorf("transport: open IN endpoint: %w", err)
	}
	p.epIn = epIn
	return nil
}

// writeRead performs one framed command/response transaction. Packets are
// fixed size; requests are zero padded.
func (p *USBProbe) writeRead(cmd []byte) ([]byte, error) {
	packet := make([]byte, p.packetSize)
	copy(packet, cmd)
	if _, err := p.epOut.Write(packet); err != nil {
		return nil, fmt.Errorf("transport: USB write: %w", err)
	}
	resp := make([]byte, p.packetSize)
	n, err := p.epIn.Read(resp)
	if err != nil {
		return nil, fmt.Errorf("transport: USB read: %w", err)
	}
	return resp[:n], nil
}

// registerFrame builds the common request header: opcode, proc, thread-less
// unit coordinates, 64-bit address, 16-bit payload byte count.
func registerFrame(op byte, ref Ref, addr uint64, nbytes int) []byte {
	frame := make([]byte, 14)
	frame[0] = op
	frame[1] = byte(ref.Proc)
	frame[2] = byte(ref.Unit)
	frame[3] = byte(ref.Thread)
	binary.BigEndian.PutUint64(frame[4:12], addr)
	binary.BigEndian.PutUint16(frame[12:14], uint16(nbytes))
	return frame
}

func (p *USBProbe) RegisterRead(ref Ref, addr uint64, buf *databuf.Buffer) uint32 {
	nbytes := (buf.BitLen() + 7) / 8
	resp, err := p.writeRead(registerFrame(cmdRegisterRead, ref, addr, nbytes))
	if err != nil || len(resp) < 4+nbytes {
		return rc.EngineCommFail
	}
	status := binary.BigEndian.Uint32(resp[:4])
	if status != rc.EngineOK {
		return status
	}
	if err := buf.SetBytes(resp[4 : 4+nbytes]); err != nil {
		return rc.EngineCommFail
	}
	return rc.EngineOK
}

func (p *USBProbe) RegisterWrite(ref Ref, addr uint64, buf *databuf.Buffer) uint32 {
	data := buf.Bytes()
	frame := append(registerFrame(cmdRegisterWrite, ref, addr, len(data)), data...)
	return p.statusTransaction(frame)
}

func (p *USBProbe) RegisterWriteMasked(ref Ref, addr uint64, buf, mask *databuf.Buffer) uint32 {
	data := buf.Bytes()
	frame := append(registerFrame(cmdRegisterMask, ref, addr, len(data)), data...)
	frame = append(frame, mask.Bytes()...)
	return p.statusTransaction(frame)
}

func (p *USBProbe) statusTransaction(frame []byte) uint32 {
	if len(frame) > p.packetSize {
		return rc.EngineUnsupported
	}
	resp, err := p.writeRead(frame)
	if err != nil || len(resp) < 4 {
		return rc.EngineCommFail
	}
	return binary.BigEndian.Uint32(resp[:4])
}

func (p *USBProbe) Scan(Ref, string, int, *databuf.Buffer, *databuf.Buffer) uint32 {
	return rc.EngineUnsupported
}

func (p *USBProbe) ScanLength(Ref, string) (int, uint32) {
	return 0, rc.EngineUnsupported
}

func (p *USBProbe) BusRead(Ref, BusAddr, *databuf.Buffer) uint32 {
	return rc.EngineUnsupported
}

func (p *USBProbe) BusWrite(Ref, BusAddr, *databuf.Buffer) uint32 {
	return rc.EngineUnsupported
}

func (p *USBProbe) PinGet(Ref, uint32) (bool, uint32) {
	return false, rc.EngineUnsupported
}

func (p *USBProbe) PinSet(Ref, uint32, bool) uint32 {
	return rc.EngineUnsupported
}

func (p *USBProbe) Control(Ref, string, *databuf.Buffer) uint32 {
	return rc.EngineUnsupported
}

var _ Transport = (*USBProbe)(nil)
