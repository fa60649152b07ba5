package pluginapi

import (
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/databuf"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/engine"
	"github.com/OpenTraceLab/OpenTraceBridge/pkg/rc"
)

// The statically linked call surface. Signatures mirror what the command
// interpreter's client API expects: a position string, engine-specific
// addressing, and a caller-owned buffer.

// GetScom reads a SCOM register into buf.
func GetScom(pos string, addr uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameSCOM, engine.OpRead, buf, engine.Options{Address: addr})
}

// PutScom writes buf to a SCOM register.
func PutScom(pos string, addr uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameSCOM, engine.OpWrite, buf, engine.Options{Address: addr})
}

// PutScomUnderMask updates only the SCOM register bits selected by mask.
func PutScomUnderMask(pos string, addr uint64, buf, mask *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameSCOM, engine.OpReadModifyWrite, buf, engine.Options{Address: addr, Mask: mask})
}

// GetRing extracts the named scan ring; the transport determines the length
// and buf is resized to fit.
func GetRing(pos, chain string, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameRing, engine.OpRead, buf, engine.Options{Chain: chain})
}

// PutRing shifts buf into the named scan ring.
func PutRing(pos, chain string, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameRing, engine.OpScanIn, buf, engine.Options{Chain: chain})
}

// GetArray reads an array window: buf.BitLen() bits at the given bit offset.
func GetArray(pos, chain string, offset int, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameArray, engine.OpScanOut, buf, engine.Options{Chain: chain, Offset: offset})
}

// PutArray writes an array window.
func PutArray(pos, chain string, offset int, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameArray, engine.OpScanIn, buf, engine.Options{Chain: chain, Offset: offset})
}

// ScanJTAG shifts buf through the named TAP and returns the capture in buf.
func ScanJTAG(pos, chain string, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameJTAG, engine.OpScanOut, buf, engine.Options{Chain: chain})
}

// GetCfam reads an FSI CFAM address.
func GetCfam(pos string, addr uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameFSI, engine.OpRead, buf, engine.Options{Address: addr})
}

// PutCfam writes an FSI CFAM address.
func PutCfam(pos string, addr uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameFSI, engine.OpWrite, buf, engine.Options{Address: addr})
}

// GetI2C reads from an I2C device offset.
func GetI2C(pos string, bus, device uint32, offset uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameI2C, engine.OpRead, buf,
		engine.Options{Bus: bus, Device: device, BusOffset: offset})
}

// PutI2C writes to an I2C device offset.
func PutI2C(pos string, bus, device uint32, offset uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameI2C, engine.OpWrite, buf,
		engine.Options{Bus: bus, Device: device, BusOffset: offset})
}

// GetGpio samples a GPIO pin into bit 0 of buf.
func GetGpio(pos string, pin uint32, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameGPIO, engine.OpRead, buf, engine.Options{Pin: pin})
}

// PutGpio drives a GPIO pin from bit 0 of buf.
func PutGpio(pos string, pin uint32, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameGPIO, engine.OpWrite, buf, engine.Options{Pin: pin})
}

// GetSensor reads a sensor by id.
func GetSensor(pos string, id uint32, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameSensor, engine.OpRead, buf, engine.Options{Device: id})
}

// TriggerMpipl starts a memory-preserving IPL on the target.
func TriggerMpipl(pos string) rc.ReturnCode {
	return call(pos, engine.NameMPIPL, engine.OpWrite, nil, engine.Options{})
}

// GetPnor reads flash content at offset.
func GetPnor(pos string, offset uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NamePNOR, engine.OpRead, buf, engine.Options{BusOffset: offset})
}

// PutPnor writes flash content at offset.
func PutPnor(pos string, offset uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NamePNOR, engine.OpWrite, buf, engine.Options{BusOffset: offset})
}

// GetSpMbox reads a service-processor mailbox register.
func GetSpMbox(pos string, offset uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameSP, engine.OpRead, buf, engine.Options{BusOffset: offset})
}

// PutSpMbox writes a service-processor mailbox register.
func PutSpMbox(pos string, offset uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameSP, engine.OpWrite, buf, engine.Options{BusOffset: offset})
}

// GetVpdKeyword reads a VPD keyword by record offset.
func GetVpdKeyword(pos string, offset uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameVPD, engine.OpRead, buf, engine.Options{BusOffset: offset})
}

// GetClock reads a clock-control register.
func GetClock(pos string, addr uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameClock, engine.OpRead, buf, engine.Options{Address: addr})
}

// PutClock writes a clock-control register.
func PutClock(pos string, addr uint64, buf *databuf.Buffer) rc.ReturnCode {
	return call(pos, engine.NameClock, engine.OpWrite, buf, engine.Options{Address: addr})
}

// PowerControl runs a named power action ("power-on", "power-off").
func PowerControl(pos, action string) rc.ReturnCode {
	return call(pos, engine.NamePower, engine.OpWrite, nil, engine.Options{Action: action})
}
