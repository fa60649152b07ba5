package cmd

import "testing"

// End-to-end runs against the simulator transport (the default --probe).

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestScomWriteThenRead(t *testing.T) {
	if err := runCLI(t, "putscom", "pu:p00", "800", "DEADBEEF11223344"); err != nil {
		t.Fatalf("putscom: %v", err)
	}
	if err := runCLI(t, "getscom", "pu:p00", "800"); err != nil {
		t.Fatalf("getscom: %v", err)
	}
}

func TestGetRingAgainstSimulator(t *testing.T) {
	if err := runCLI(t, "getring", "pu:p00", "eq_func"); err != nil {
		t.Fatalf("getring: %v", err)
	}
}

func TestQueryEngines(t *testing.T) {
	if err := runCLI(t, "query", "engines"); err != nil {
		t.Fatalf("query engines: %v", err)
	}
}

func TestQueryTargetsWildcard(t *testing.T) {
	if err := runCLI(t, "query", "targets", "pu:pall"); err != nil {
		t.Fatalf("query targets: %v", err)
	}
}

func TestGetScomBadPositionFails(t *testing.T) {
	if err := runCLI(t, "getscom", "pib", "800"); err == nil {
		t.Fatalf("getscom on unknown chip succeeded, want error")
	}
}

func TestVersionCommand(t *testing.T) {
	if err := runCLI(t, "version"); err != nil {
		t.Fatalf("version: %v", err)
	}
}
