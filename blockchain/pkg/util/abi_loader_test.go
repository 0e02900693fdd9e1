package util

import (
	"os"
	"path/filepath"
	"testing"
)

const plainABI = `[
  {"type":"function","name":"calculateCurrentPrice","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"buy","stateMutability":"payable","inputs":[{"name":"minReturn","type":"uint256"}],"outputs":[]}
]`

func writeTempABI(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadABIFromHardhatArtifact(t *testing.T) {
	artifact := `{
  "_format": "hh-sol-artifact-1",
  "contractName": "BondingCurve",
  "sourceName": "contracts/BondingCurve.sol",
  "abi": ` + plainABI + `,
  "bytecode": "0x"
}`
	path := writeTempABI(t, "BondingCurve.json", artifact)

	abi, err := LoadABI(path)
	if err != nil {
		t.Fatal(err)
	}
	if abi == nil {
		t.Fatal("ABI is nil")
	}

	expectedMethods := []string{"calculateCurrentPrice", "buy"}
	for _, methodName := range expectedMethods {
		if _, exists := abi.Methods[methodName]; !exists {
			t.Errorf("Expected method %s not found in ABI", methodName)
		}
	}
}

func TestLoadABIPlainJSON(t *testing.T) {
	path := writeTempABI(t, "plain.json", plainABI)

	abi, err := LoadABI(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(abi.Methods) != 2 {
		t.Errorf("Expected 2 methods, got %d", len(abi.Methods))
	}
}

func TestLoadABIMissingFile(t *testing.T) {
	if _, err := LoadABI(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
