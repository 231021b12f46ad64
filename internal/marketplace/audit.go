package marketplace

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// fixAuditFile sits next to the manifest and records every fix-mode
// mutation as a hash-chained JSONL line, so a rewrite can always be traced
// back to the run that produced it.
const fixAuditFile = "fix-audit.jsonl"

// auditFixEvent appends one fix event. Audit failures never abort a fix;
// they are logged and dropped.
func (v *Verifier) auditFixEvent(path, runID string, payload map[string]any) {
	event := map[string]any{
		"time": time.Now().UTC().Format(time.RFC3339),
		"run":  runID,
	}
	for k, val := range payload {
		event[k] = val
	}
	if err := appendChainedAuditLine(path, event); err != nil {
		v.log.Warn().Err(err).Str("path", path).Msg("fix audit append failed")
	}
}

func appendChainedAuditLine(path string, entry map[string]any) error {
	delete(entry, "hash")
	delete(entry, "prevHash")

	prevHash, err := readLastAuditHash(path)
	if err != nil {
		return err
	}
	if prevHash != "" {
		entry["prevHash"] = prevHash
	}
	entry["hash"] = computeAuditHash(entry)

	line, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}

func readLastAuditHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	defer f.Close()

	var last string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			last = line
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if last == "" {
		return "", nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(last), &obj); err != nil {
		return "", fmt.Errorf("invalid existing audit line: %w", err)
	}
	hash, _ := obj["hash"].(string)
	return strings.TrimSpace(hash), nil
}

func computeAuditHash(entry map[string]any) string {
	canonical := map[string]any{}
	for k, v := range entry {
		if k == "hash" {
			continue
		}
		canonical[k] = v
	}
	data, _ := json.Marshal(canonical)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
