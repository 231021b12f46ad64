package marketplace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// scanOrphans walks the skills subtree for SKILL.md documents whose
// directory no plugin has claimed. A missing skills directory is not an
// error; there is simply nothing to scan.
func (v *Verifier) scanOrphans(root string, registered map[string]string, rep *Report) {
	skillsDir := filepath.Join(root, v.cfg.Paths.SkillsDir)

	err := v.fs.WalkDir(skillsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != SkillFileName {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(p))
		if err != nil {
			return err
		}
		normalized := filepath.ToSlash(rel)
		if _, ok := registered[normalized]; ok {
			return nil
		}
		rep.Stats.OrphansFound++
		rep.Warning("orphan-skill",
			fmt.Sprintf("Skill exists on disk but not in marketplace.json: %s", normalized),
			p,
			fmt.Sprintf("Add './%s' to a plugin in marketplace.json", normalized))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		v.log.Warn().Err(err).Str("dir", skillsDir).Msg("orphan scan aborted")
	}
}
