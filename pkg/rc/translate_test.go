package rc

import "testing"

func TestTranslateKnownStatuses(t *testing.T) {
	xlate := NewTranslator(false)

	tests := []struct {
		name         string
		raw          uint32
		wantValue    uint32
		wantSeverity Severity
	}{
		{name: "ok", raw: EngineOK, wantValue: Success, wantSeverity: SeveritySuccess},
		{name: "parity", raw: EngineParity, wantValue: EngineFailure, wantSeverity: SeverityFatal},
		{name: "fenced maps to not present", raw: EngineFenced, wantValue: TargetNotPresent, wantSeverity: SeverityFatal},
		{name: "unsupported", raw: EngineUnsupported, wantValue: UnsupportedOperation, wantSeverity: SeverityFatal},
		{name: "partial good advisory", raw: EnginePartialGood, wantValue: AdvisoryPartialGood, wantSeverity: SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := xlate.Translate(tt.raw)
			if got.Domain != DomainClient {
				t.Errorf("domain = %v, want client", got.Domain)
			}
			if got.Value != tt.wantValue {
				t.Errorf("value = %#x, want %#x", got.Value, tt.wantValue)
			}
			if got.Severity != tt.wantSeverity {
				t.Errorf("severity = %v, want %v", got.Severity, tt.wantSeverity)
			}
		})
	}
}

func TestTranslateUnmappedPreservesRaw(t *testing.T) {
	xlate := NewTranslator(false)

	got := xlate.Translate(0xBEEF)
	if got.Value != EngineFailure {
		t.Errorf("value = %#x, want EngineFailure", got.Value)
	}
	if got.Raw != 0xBEEF {
		t.Errorf("raw = %#x, want 0xBEEF preserved", got.Raw)
	}
	if got.Severity != SeverityFatal {
		t.Errorf("severity = %v, want fatal", got.Severity)
	}
}

func TestStripDebugCollapsesAdvisories(t *testing.T) {
	xlate := NewTranslator(true)

	for _, raw := range []uint32{EnginePartialGood, EngineRetried, EngineTraceOn} {
		got := xlate.Translate(raw)
		if !got.IsOK() {
			t.Errorf("strip-debug Translate(%#x) = %v, want plain success", raw, got)
		}
	}

	// Fatal statuses are unaffected by strip-debug.
	if got := xlate.Translate(EngineParity); got.Value != EngineFailure {
		t.Errorf("strip-debug parity = %v, want EngineFailure", got)
	}
}

func TestToEngineReverse(t *testing.T) {
	xlate := NewTranslator(false)

	if got := xlate.ToEngine(Success); got != EngineOK {
		t.Errorf("ToEngine(Success) = %#x, want EngineOK", got)
	}
	if got := xlate.ToEngine(TargetNotPresent); got != EngineFenced {
		t.Errorf("ToEngine(TargetNotPresent) = %#x, want EngineFenced", got)
	}
	// Folded codes map to one canonical raw value, always the same one.
	for i := 0; i < 8; i++ {
		if got := xlate.ToEngine(EngineFailure); got != EngineCommFail {
			t.Fatalf("ToEngine(EngineFailure) = %#x, want EngineCommFail every time", got)
		}
	}
	if got := xlate.ToEngine(0xFFFF); got != EngineUnsupported {
		t.Errorf("ToEngine(unknown) = %#x, want EngineUnsupported", got)
	}
}
