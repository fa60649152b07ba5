// Package rc defines the return-code vocabulary that crosses the bridge
// boundary and the translation between the client domain and the hardware
// engine domain. A code that crosses the boundary is always expressed in the
// caller's domain; raw engine codes never escape untranslated.
package rc

import "fmt"

// Domain tags which vocabulary a code belongs to.
type Domain uint8

const (
	// DomainClient is the front-end vocabulary observed by callers.
	DomainClient Domain = iota
	// DomainEngine is the hardware-engine library's raw status vocabulary.
	DomainEngine
)

// Severity classifies the outcome.
type Severity uint8

const (
	SeveritySuccess Severity = iota
	SeverityWarning
	SeverityFatal
)

// Client-domain code values.
const (
	Success uint32 = 0

	// Resolution failures.
	NoSuchTarget     uint32 = 0x1001
	TargetNotPresent uint32 = 0x1002
	AmbiguousTarget  uint32 = 0x1003

	// Registry failures.
	UnknownEngine         uint32 = 0x2001
	EngineDisabledInBuild uint32 = 0x2002

	// Validation failures.
	UnsupportedOperation uint32 = 0x3001
	InvalidBufferShape   uint32 = 0x3002

	// Transport outcomes.
	EngineFailure    uint32 = 0x4001
	TransportTimeout uint32 = 0x4002

	// Advisory codes, stripped to Success in strip-debug builds.
	AdvisoryPartialGood  uint32 = 0x5001
	AdvisoryRetrySucceed uint32 = 0x5002
	AdvisoryTraceActive  uint32 = 0x5003
)

// Engine-domain raw status values, mirroring the hardware-access library.
const (
	EngineOK          uint32 = 0
	EngineParity      uint32 = 0x10
	EngineAddressErr  uint32 = 0x11
	EngineFenced      uint32 = 0x12
	EngineBusy        uint32 = 0x13
	EngineCommFail    uint32 = 0x14
	EngineUnsupported uint32 = 0x15
	EnginePartialGood uint32 = 0x20
	EngineRetried     uint32 = 0x21
	EngineTraceOn     uint32 = 0x22
)

// ReturnCode is a tagged outcome. Raw preserves the original engine-domain
// value when the code is the product of a translation, so support escalation
// never loses the hardware status.
type ReturnCode struct {
	Domain   Domain
	Value    uint32
	Severity Severity
	Raw      uint32
}

// OK constructs a client-domain success.
func OK() ReturnCode {
	return ReturnCode{Domain: DomainClient, Value: Success, Severity: SeveritySuccess}
}

// ClientError constructs a fatal client-domain code.
func ClientError(value uint32) ReturnCode {
	return ReturnCode{Domain: DomainClient, Value: value, Severity: SeverityFatal}
}

// IsOK reports whether the outcome is a plain success.
func (r ReturnCode) IsOK() bool {
	return r.Severity == SeveritySuccess && r.Value == Success
}

// Failed reports whether the outcome is fatal.
func (r ReturnCode) Failed() bool {
	return r.Severity == SeverityFatal
}

func (r ReturnCode) String() string {
	name := clientName(r.Value)
	if r.Domain == DomainEngine {
		name = "engine"
	}
	if r.Raw != 0 {
		return fmt.Sprintf("%s (0x%X, raw 0x%X)", name, r.Value, r.Raw)
	}
	return fmt.Sprintf("%s (0x%X)", name, r.Value)
}

func clientName(value uint32) string {
	switch value {
	case Success:
		return "success"
	case NoSuchTarget:
		return "no such target"
	case TargetNotPresent:
		return "target not present"
	case AmbiguousTarget:
		return "ambiguous target"
	case UnknownEngine:
		return "unknown engine"
	case EngineDisabledInBuild:
		return "engine disabled in build"
	case UnsupportedOperation:
		return "unsupported operation"
	case InvalidBufferShape:
		return "invalid buffer shape"
	case EngineFailure:
		return "engine failure"
	case TransportTimeout:
		return "transport timeout"
	case AdvisoryPartialGood:
		return "advisory: partial good"
	case AdvisoryRetrySucceed:
		return "advisory: succeeded after retry"
	case AdvisoryTraceActive:
		return "advisory: trace active"
	}
	return "unrecognized"
}
