package rc

// mapping pairs one engine-domain status with its client-domain equivalent.
type mapping struct {
	client   uint32
	severity Severity
	advisory bool
}

// defaultTable is the fixed engine-to-client mapping. Entries flagged
// advisory collapse to plain success when the translator is built with
// strip-debug enabled.
var defaultTable = map[uint32]mapping{
	EngineOK:          {client: Success, severity: SeveritySuccess},
	EngineParity:      {client: EngineFailure, severity: SeverityFatal},
	EngineAddressErr:  {client: EngineFailure, severity: SeverityFatal},
	EngineFenced:      {client: TargetNotPresent, severity: SeverityFatal},
	EngineBusy:        {client: EngineFailure, severity: SeverityFatal},
	EngineCommFail:    {client: EngineFailure, severity: SeverityFatal},
	EngineUnsupported: {client: UnsupportedOperation, severity: SeverityFatal},
	EnginePartialGood: {client: AdvisoryPartialGood, severity: SeverityWarning, advisory: true},
	EngineRetried:     {client: AdvisoryRetrySucceed, severity: SeverityWarning, advisory: true},
	EngineTraceOn:     {client: AdvisoryTraceActive, severity: SeverityWarning, advisory: true},
}

// Translator converts engine-domain statuses into client-domain return
// codes. It is immutable after construction and safe for concurrent use.
type Translator struct {
	table map[uint32]mapping
}

// NewTranslator builds a translator from the fixed table. With stripDebug
// set, advisory entries are removed so the statuses they covered translate
// to plain success; this is the single policy switch for the reduced build's
// deliberate fidelity loss.
func NewTranslator(stripDebug bool) *Translator {
	table := make(map[uint32]mapping, len(defaultTable))
	for raw, m := range defaultTable {
		if stripDebug && m.advisory {
			table[raw] = mapping{client: Success, severity: SeveritySuccess}
			continue
		}
		table[raw] = m
	}
	return &Translator{table: table}
}

// Translate maps a raw engine-domain status into the client domain. Statuses
// outside the table become EngineFailure with the raw value preserved.
func (t *Translator) Translate(raw uint32) ReturnCode {
	if m, ok := t.table[raw]; ok {
		out := ReturnCode{Domain: DomainClient, Value: m.client, Severity: m.severity}
		if m.client != Success {
			out.Raw = raw
		}
		return out
	}
	return ReturnCode{Domain: DomainClient, Value: EngineFailure, Severity: SeverityFatal, Raw: raw}
}

// reverseTable maps client-domain values back to the engine domain. Client
// codes that fold several engine statuses pick one canonical raw value.
var reverseTable = map[uint32]uint32{
	Success:              EngineOK,
	TargetNotPresent:     EngineFenced,
	UnsupportedOperation: EngineUnsupported,
	EngineFailure:        EngineCommFail,
	AdvisoryPartialGood:  EnginePartialGood,
	AdvisoryRetrySucceed: EngineRetried,
	AdvisoryTraceActive:  EngineTraceOn,
}

// ToEngine maps a client-domain value back to the engine domain. Client codes
// with no engine equivalent map to EngineUnsupported.
func (t *Translator) ToEngine(client uint32) uint32 {
	if raw, found := reverseTable[client]; found {
		return raw
	}
	return EngineUnsupported
}
