package transport

import (
	"context"
	"fmt"

	"github.com/google/gousb"
)

// ProbeKind categorizes debug probe families.
type ProbeKind string

const (
	ProbeKindFSI     ProbeKind = "fsi-probe"
	ProbeKindBMC     ProbeKind = "bmc-bridge"
	ProbeKindSim     ProbeKind = "simulator"
	ProbeKindUnknown ProbeKind = "unknown"
)

// ProbeInfo describes a detected hardware debug probe.
type ProbeInfo struct {
	Kind        ProbeKind
	Description string
	VendorID    uint16
	ProductID   uint16
	Serial      string
}

// Label returns a user-friendly description for the probe.
func (p ProbeInfo) Label() string {
	if p.Description != "" {
		return p.Description
	}
	if p.Kind != "" {
		return fmt.Sprintf("%s (%04X:%04X)", string(p.Kind), p.VendorID, p.ProductID)
	}
	return fmt.Sprintf("Probe %04X:%04X", p.VendorID, p.ProductID)
}

type knownUSBProbe struct {
	VendorID    uint16
	ProductID   uint16
	Kind        ProbeKind
	Description string
}

var knownProbes = []knownUSBProbe{
	{VendorID: 0x1604, ProductID: 0x0002, Kind: ProbeKindFSI, Description: "FSI Service Probe"},
	{VendorID: 0x04b3, ProductID: 0x4433, Kind: ProbeKindFSI, Description: "CFAM Debug Pod"},
	{VendorID: 0x2e8a, ProductID: 0x000c, Kind: ProbeKindBMC, Description: "Pico Debug Bridge"},
}

// DiscoverProbes enumerates connected debug probes that match known VID/PID
// pairs. It always returns the simulator entry last so callers can operate
// without hardware connected.
func DiscoverProbes(ctx context.Context) ([]ProbeInfo, error) {
	var results []ProbeInfo
	usb := gousb.NewContext()
	defer usb.Close()

	_, err := usb.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}

		if info, matched := classifyUSBProbe(desc); matched {
			results = append(results, info)
		}
		return false
	})
	if err != nil && err != gousb.ErrorAccess {
		return results, err
	}

	results = append(results, ProbeInfo{
		Kind:        ProbeKindSim,
		Description: "Simulator (no hardware)",
	})
	return results, nil
}

func classifyUSBProbe(desc *gousb.DeviceDesc) (ProbeInfo, bool) {
	for _, known := range knownProbes {
		if uint16(desc.Vendor) == known.VendorID && uint16(desc.Product) == known.ProductID {
			return ProbeInfo{
				Kind:        known.Kind,
				Description: known.Description,
				VendorID:    known.VendorID,
				ProductID:   known.ProductID,
			}, true
		}
	}
	return ProbeInfo{}, false
}

// OpenProbe opens a transport for the given probe. The simulator kind is
// always available; hardware kinds require the matching USB device.
func OpenProbe(info ProbeInfo) (Transport, error) {
	switch info.Kind {
	case ProbeKindSim:
		return NewSimTransport(), nil
	case ProbeKindFSI, ProbeKindBMC:
		return NewUSBProbe(info.VendorID, info.ProductID)
	}
	return nil, fmt.Errorf("transport: unsupported probe kind %q", info.Kind)
}
