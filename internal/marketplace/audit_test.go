package marketplace

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestAppendChainedAuditLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fix-audit.jsonl")

	if err := appendChainedAuditLine(path, map[string]any{"action": "remove-skill", "skill": "a"}); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := appendChainedAuditLine(path, map[string]any{"action": "remove-plugin", "plugin": "p"}); err != nil {
		t.Fatalf("second append: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var obj map[string]any
		if err := json.Unmarshal(sc.Bytes(), &obj); err != nil {
			t.Fatalf("decode line: %v", err)
		}
		lines = append(lines, obj)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if _, has := lines[0]["prevHash"]; has {
		t.Fatal("first entry must not carry prevHash")
	}
	if lines[1]["prevHash"] != lines[0]["hash"] {
		t.Fatal("second entry must chain to the first")
	}
}

func TestComputeAuditHashIgnoresOwnHash(t *testing.T) {
	entry := map[string]any{"action": "write-manifest", "path": "x"}
	want := computeAuditHash(entry)
	entry["hash"] = want
	if got := computeAuditHash(entry); got != want {
		t.Fatal("hash must be computed over the entry without its own hash field")
	}
}

func TestReadLastAuditHashMissingFile(t *testing.T) {
	hash, err := readLastAuditHash(filepath.Join(t.TempDir(), "absent.jsonl"))
	if err != nil || hash != "" {
		t.Fatalf("missing file should yield empty hash, got %q err %v", hash, err)
	}
}
