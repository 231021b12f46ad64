package marketplace

import (
	"path/filepath"

	"github.com/rs/zerolog"
)

// applyFixes prunes skill references that no longer resolve to a SKILL.md,
// then drops plugins left with no skills, and rewrites the manifest when
// anything changed. It only ever removes entries. Each mutation is logged
// and appended to the fix audit trail. No re-validation happens in the same
// run.
func (v *Verifier) applyFixes(man *Manifest, root, runID string, log zerolog.Logger) error {
	auditPath := filepath.Join(filepath.Dir(man.Path), fixAuditFile)
	fixed := false

	plugins, _ := man.Plugins()
	for _, raw := range plugins {
		plugin, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		label, _ := plugin["name"].(string)
		skills, ok := plugin["skills"].([]any)
		if !ok {
			continue
		}

		valid := make([]any, 0, len(skills))
		for _, rawRef := range skills {
			if ref, isString := rawRef.(string); isString {
				docPath := filepath.Join(root, filepath.FromSlash(normalizeSkillPath(ref)), SkillFileName)
				if v.fs.FileExists(docPath) {
					valid = append(valid, rawRef)
					continue
				}
			}
			fixed = true
			log.Info().Str("plugin", label).Interface("skill", rawRef).Msg("removed missing skill reference")
			v.auditFixEvent(auditPath, runID, map[string]any{
				"action": "remove-skill",
				"plugin": label,
				"skill":  rawRef,
			})
		}
		plugin["skills"] = valid
	}

	kept := make([]any, 0, len(plugins))
	removed := 0
	for _, raw := range plugins {
		plugin, ok := raw.(map[string]any)
		if ok {
			empty := false
			switch skills := plugin["skills"].(type) {
			case []any:
				empty = len(skills) == 0
			case nil:
				empty = true
			}
			if empty {
				removed++
				label, _ := plugin["name"].(string)
				v.auditFixEvent(auditPath, runID, map[string]any{
					"action": "remove-plugin",
					"plugin": label,
				})
				continue
			}
		}
		kept = append(kept, raw)
	}
	if removed > 0 {
		fixed = true
		man.Data["plugins"] = kept
		log.Info().Int("count", removed).Msg("removed empty plugins")
	}

	if !fixed {
		return nil
	}
	if err := man.Save(); err != nil {
		return err
	}
	log.Info().Str("path", man.Path).Msg("fixed manifest written")
	v.auditFixEvent(auditPath, runID, map[string]any{
		"action": "write-manifest",
		"path":   man.Path,
	})
	return nil
}
