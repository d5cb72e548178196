package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Williamson-Consulting-Services/shopify-prod-cockeye-kink/pkg/models"
)

// maxLineContent caps captured diff line content so the inventory stays
// reviewable for minified assets.
const maxLineContent = 200

var (
	diffHeaderRe = regexp.MustCompile(`^diff --git a/(.+?) b/(.+)$`)
	hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)
)

// ParseUnifiedDiff extracts the added lines per file from a unified diff,
// tracking line numbers on the compare side of each hunk. Removed and
// context lines only advance the counters.
func ParseUnifiedDiff(text string) map[string][]models.LineChange {
	changes := make(map[string][]models.LineChange)
	var current string
	lineNum := -1

	for _, line := range strings.Split(text, "\n") {
		if m := diffHeaderRe.FindStringSubmatch(line); m != nil {
			current = m[2]
			lineNum = -1
			continue
		}
		if m := hunkHeaderRe.FindStringSubmatch(line); m != nil {
			lineNum, _ = strconv.Atoi(m[3])
			continue
		}
		if current == "" || lineNum < 0 {
			continue
		}

		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			// file headers, not content
		case strings.HasPrefix(line, "+"):
			content := strings.TrimRight(line[1:], " \t\r")
			if content != "" {
				if len(content) > maxLineContent {
					content = content[:maxLineContent]
				}
				changes[current] = append(changes[current], models.LineChange{
					Line:    lineNum,
					Type:    "addition",
					Content: content,
				})
			}
			lineNum++
		case strings.HasPrefix(line, "-"):
			// base-side line, does not advance the compare-side counter
		default:
			lineNum++
		}
	}
	return changes
}

// integrationPatterns recognize references to custom code inside an added
// line: snippet renders, script tags, and stylesheet links that follow the
// custom naming convention.
var integrationPatterns = []struct {
	re   *regexp.Regexp
	desc string
}{
	{regexp.MustCompile(`(?i)render\s+['"]custom-`), "Custom snippet render"},
	{regexp.MustCompile(`(?i)custom-[\w.-]*\.js`), "Custom JavaScript reference"},
	{regexp.MustCompile(`(?i)component-custom-[\w.-]*\.css`), "Custom CSS reference"},
}

// IntegrationPoints scans a file's added lines for references to custom
// code and returns one annotated location per matching line.
func IntegrationPoints(changes []models.LineChange) []string {
	var points []string
	for _, ch := range changes {
		for _, p := range integrationPatterns {
			if p.re.MatchString(ch.Content) {
				points = append(points, fmt.Sprintf("Line %d: %s", ch.Line, p.desc))
				break
			}
		}
	}
	return points
}
