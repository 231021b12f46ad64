package marketplace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marketvet/marketvet/internal/config"
	"github.com/marketvet/marketvet/internal/frontmatter"
)

// SkillFileName is the document every referenced skill directory must
// contain.
const SkillFileName = "SKILL.md"

// Verifier runs the validation pipeline for one manifest.
type Verifier struct {
	cfg *config.Config
	fs  FS
	log zerolog.Logger
}

// NewVerifier wires a verifier with its config, filesystem and logger.
func NewVerifier(cfg *config.Config, fsys FS, log zerolog.Logger) *Verifier {
	return &Verifier{cfg: cfg, fs: fsys, log: log}
}

// Run validates the manifest at manifestPath and returns the report. When
// fix is set and validation failed, dangling references and empty plugins
// are pruned and the manifest rewritten in place; a second run confirms
// convergence. The returned error covers fix-mode write failures only;
// validation findings live in the report.
func (v *Verifier) Run(manifestPath string, fix bool) (*Report, error) {
	rep := NewReport()

	abs, err := filepath.Abs(manifestPath)
	if err != nil {
		abs = manifestPath
	}
	// The manifest lives in a configuration directory one level inside the
	// project root.
	root := filepath.Dir(filepath.Dir(abs))

	runID := uuid.NewString()
	log := v.log.With().Str("run", runID).Logger()
	log.Debug().Str("manifest", abs).Str("root", root).Msg("starting validation")

	if !v.fs.FileExists(abs) {
		rep.Error("file-not-found", fmt.Sprintf("File not found: %s", abs), "", "")
		return rep, nil
	}

	man, err := LoadManifest(v.fs, abs)
	if err != nil {
		rep.Error("invalid-json", fmt.Sprintf("Invalid JSON: %v", err), "", "")
		return rep, nil
	}

	v.checkStructure(man, rep)

	plugins, ok := man.Plugins()
	if !ok {
		if _, present := man.Data["plugins"]; present {
			// invalid-type was already recorded; nothing left to walk.
			return rep, nil
		}
		plugins = nil
	}

	v.checkUniquePluginNames(plugins, rep)

	owners := map[string]string{}
	for i, plugin := range plugins {
		v.checkPlugin(plugin, i, owners, root, log, rep)
	}

	v.scanOrphans(root, owners, rep)

	if fix && !rep.Passed() {
		if err := v.applyFixes(man, root, runID, log); err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// checkStructure validates the manifest's top-level shape.
func (v *Verifier) checkStructure(man *Manifest, rep *Report) {
	for _, field := range requiredManifestFields {
		if _, ok := man.Data[field]; !ok {
			rep.Error("required-field", fmt.Sprintf("Missing required field: %s", field), "", "")
		}
	}
	if raw, ok := man.Data["plugins"]; ok {
		if _, isList := raw.([]any); !isList {
			rep.Error("invalid-type", "Field 'plugins' must be an array", "", "")
		}
	}
}

// checkUniquePluginNames flags plugin names reused across the manifest,
// citing the first-seen index. Unnamed plugins cannot be deduplicated and
// are skipped.
func (v *Verifier) checkUniquePluginNames(plugins []any, rep *Report) {
	seen := map[string]int{}
	for i, raw := range plugins {
		plugin, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := plugin["name"].(string)
		if name == "" {
			continue
		}
		if first, dup := seen[name]; dup {
			rep.Error("duplicate-plugin-name",
				fmt.Sprintf("Plugin name '%s' is used by plugins at index %d and %d", name, first, i), "", "")
			continue
		}
		seen[name] = i
	}
}

// checkPlugin validates one plugin entry and every skill it references.
// owners maps each normalized skill path to the plugin that first claimed
// it.
func (v *Verifier) checkPlugin(raw any, idx int, owners map[string]string, root string, log zerolog.Logger, rep *Report) {
	rep.Stats.PluginsChecked++

	plugin, ok := raw.(map[string]any)
	if !ok {
		rep.Error("invalid-type", fmt.Sprintf("Plugin at index %d must be an object", idx), "", "")
		return
	}

	label, _ := plugin["name"].(string)
	if label == "" {
		label = fmt.Sprintf("plugin[%d]", idx)
	}
	log.Debug().Str("plugin", label).Msg("checking plugin")

	for _, field := range requiredPluginFields {
		if _, ok := plugin[field]; !ok {
			rep.Error("required-field",
				fmt.Sprintf("Plugin '%s': missing required field '%s'", label, field), "", "")
		}
	}
	for _, field := range recommendedPluginFields {
		if _, ok := plugin[field]; !ok {
			rep.Warning("recommended-field",
				fmt.Sprintf("Plugin '%s': missing recommended field '%s'", label, field), "", "")
		}
	}

	rawSkills, present := plugin["skills"]
	if !present {
		return
	}
	skills, isList := rawSkills.([]any)
	if !isList {
		rep.Error("invalid-type", fmt.Sprintf("Plugin '%s': 'skills' must be an array", label), "", "")
		return
	}

	for _, rawRef := range skills {
		rep.Stats.SkillsChecked++

		ref, ok := rawRef.(string)
		if !ok {
			rep.Error("invalid-type",
				fmt.Sprintf("Plugin '%s': skill reference must be a string", label), "", "")
			continue
		}

		normalized := normalizeSkillPath(ref)
		docPath := filepath.Join(root, filepath.FromSlash(normalized), SkillFileName)
		log.Debug().Str("plugin", label).Str("skill", normalized).Msg("checking skill")

		if !v.fs.FileExists(docPath) {
			rep.Stats.SkillsMissing++
			rep.Error("missing-skill",
				fmt.Sprintf("Skill path does not exist: %s", ref),
				docPath,
				fmt.Sprintf("Remove '%s' from plugin '%s' or create %s", ref, label, docPath))
			continue
		}

		// First claimer keeps ownership; the second occurrence is still
		// reported.
		if owner, claimed := owners[normalized]; claimed {
			rep.Error("duplicate-path",
				fmt.Sprintf("Skill path '%s' appears in both '%s' and '%s'", ref, owner, label), "", "")
		} else {
			owners[normalized] = label
		}

		v.checkSkillDoc(docPath, normalized, rep)
	}
}

// checkSkillDoc validates a SKILL.md document: readability, size,
// frontmatter, and the name/description conventions.
func (v *Verifier) checkSkillDoc(docPath, skillPath string, rep *Report) {
	raw, err := v.fs.ReadFile(docPath)
	if err != nil {
		rep.Error("read-error", fmt.Sprintf("Cannot read %s: %v", docPath, err), docPath, "")
		return
	}
	content := string(raw)

	if lines := strings.Count(content, "\n") + 1; lines > v.cfg.Limits.MaxSkillLines {
		rep.Warning("skill-too-large",
			fmt.Sprintf("SKILL.md is %d lines (max %d)", lines, v.cfg.Limits.MaxSkillLines), docPath, "")
	}

	fm, err := frontmatter.Parse(content)
	if err != nil {
		rep.Error("invalid-frontmatter", err.Error(), docPath, "")
		return
	}
	if fm == nil {
		rep.Error("missing-frontmatter", "No frontmatter found", docPath, "")
		return
	}

	for _, field := range requiredFrontmatterFields {
		if !fm.Has(field) {
			rep.Error("missing-frontmatter-field",
				fmt.Sprintf("Missing required frontmatter field: %s", field), docPath, "")
		}
	}

	if name, ok := fm.GetScalar("name"); ok && name != "" {
		checkName(name, skillPath, docPath, v.cfg.Limits, rep)
	}
	if desc, ok := fm.GetScalar("description"); ok && desc != "" {
		checkDescription(desc, docPath, v.cfg.Limits, rep)
	}
}
