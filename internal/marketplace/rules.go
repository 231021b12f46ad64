package marketplace

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/marketvet/marketvet/internal/config"
)

var (
	requiredManifestFields    = []string{"name", "plugins"}
	requiredPluginFields      = []string{"name", "source"}
	recommendedPluginFields   = []string{"description", "category"}
	requiredFrontmatterFields = []string{"name", "description"}

	namePattern        = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)
	gerundSuffixes     = []string{"ing", "ment", "tion", "sion"}
	firstPersonOpeners = []string{"i ", "we ", "my ", "our "}
)

// checkName applies the naming conventions to a skill's frontmatter name.
// skillPath is the normalized reference the name is expected to match;
// docPath is cited in findings. Pure: no filesystem access.
func checkName(name, skillPath, docPath string, limits config.LimitsConfig, rep *Report) {
	// Ceilings count characters, not bytes.
	if n := utf8.RuneCountInString(name); n > limits.MaxNameLength {
		rep.Error("name-too-long",
			fmt.Sprintf("Name '%s' exceeds %d chars (%d)", name, limits.MaxNameLength, n), docPath, "")
	}

	if !namePattern.MatchString(name) {
		rep.Error("invalid-name-format",
			fmt.Sprintf("Name '%s' must be lowercase letters, numbers, and hyphens only", name), docPath, "")
	}

	// Checked independently of the pattern, which already rejects this.
	if strings.Contains(name, "--") {
		rep.Error("consecutive-hyphens",
			fmt.Sprintf("Name '%s' contains consecutive hyphens", name), docPath, "")
	}

	firstWord, _, _ := strings.Cut(name, "-")
	gerund := false
	for _, suffix := range gerundSuffixes {
		if strings.HasSuffix(firstWord, suffix) {
			gerund = true
			break
		}
	}
	if !gerund {
		rep.Warning("non-gerund-name",
			fmt.Sprintf("Name '%s' first word '%s' doesn't appear to be gerund form", name, firstWord), docPath, "")
	}

	// The name should match the containing directory, or carry the parent
	// directory as a namespace prefix.
	dirName := path.Base(skillPath)
	if dirName == "." || dirName == "/" {
		dirName = ""
	}
	parentDir := path.Base(path.Dir(skillPath))
	if parentDir == "." || parentDir == "/" {
		parentDir = ""
	}
	parentPrefixed := ""
	if parentDir != "" {
		parentPrefixed = parentDir + "-" + dirName
	}
	if name != dirName && name != parentPrefixed {
		rep.Warning("name-mismatch",
			fmt.Sprintf("Frontmatter name '%s' doesn't match directory name '%s' or '%s'", name, dirName, parentPrefixed), docPath, "")
	}
}

// checkDescription applies the description conventions. Pure: no filesystem
// access.
func checkDescription(desc, docPath string, limits config.LimitsConfig, rep *Report) {
	if n := utf8.RuneCountInString(desc); n > limits.MaxDescriptionLength {
		rep.Error("description-too-long",
			fmt.Sprintf("Description exceeds %d chars (%d)", limits.MaxDescriptionLength, n), docPath, "")
	}

	lower := strings.ToLower(strings.TrimSpace(desc))
	for _, opener := range firstPersonOpeners {
		if strings.HasPrefix(lower, opener) {
			rep.Warning("first-person-description",
				"Description should be third-person (avoid 'I', 'We')", docPath, "")
			break
		}
	}

	if !strings.Contains(lower, "use when") {
		rep.Warning("missing-use-when",
			"Description should include 'Use when' trigger clause", docPath, "")
	}
}

// normalizeSkillPath strips any leading "./" prefixes so equivalent
// references compare equal.
func normalizeSkillPath(p string) string {
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}
