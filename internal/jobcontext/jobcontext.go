// Package jobcontext builds the job-targeting input of the display adapter
// from a job posting document (HTML or plain text).
package jobcontext

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/camille/cv-forge/internal/textutil"
	"github.com/camille/cv-forge/internal/types"
)

// roleFamily describes one known role family: the title keywords that
// identify it, the keywords the family values, and the title keywords
// denoting experiences unrelated enough to exclude from a CV targeting it.
type roleFamily struct {
	name          string
	titleKeywords []string
	keywords      []string
	excludeTitles []string
}

// roleFamilies is a fixed taxonomy. Families are probed in order; the first
// whose title keyword appears in the posting wins.
var roleFamilies = []roleFamily{
	{
		name:          "gestion de projet",
		titleKeywords: []string{"chef de projet", "directeur de projet", "project manager", "pmo", "program manager"},
		keywords:      []string{"pilotage", "budget", "planning", "comite", "gouvernance", "agile", "scrum"},
		excludeTitles: []string{"développeur", "developer", "intégrateur"},
	},
	{
		name:          "développement",
		titleKeywords: []string{"développeur", "developer", "software engineer", "ingénieur logiciel"},
		keywords:      []string{"api", "backend", "frontend", "ci cd", "tests", "architecture"},
		excludeTitles: []string{"commercial", "vendeur"},
	},
	{
		name:          "data",
		titleKeywords: []string{"data scientist", "data engineer", "data analyst"},
		keywords:      []string{"python", "sql", "pipeline", "machine learning", "dashboard"},
		excludeTitles: []string{"commercial", "vendeur"},
	},
}

// FromHTML extracts the posting text from an HTML document and derives a
// job context from it.
func FromHTML(html string) (*types.JobContext, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse job posting HTML: %w", err)
	}
	doc.Find("script, style, nav, footer").Remove()

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	body := textutil.CollapseWhitespace(doc.Find("body").Text())
	return FromText(title, body), nil
}

// FromText derives a job context from a role title and posting text. An
// unknown role family yields a context with the title only: the relevance
// filter then stays inactive rather than guessing.
func FromText(roleTitle, body string) *types.JobContext {
	ctx := &types.JobContext{RoleTitle: strings.TrimSpace(roleTitle)}

	probe := textutil.Comparable(roleTitle + " " + body)
	for _, family := range roleFamilies {
		if !matchesFamily(family, textutil.Comparable(roleTitle), probe) {
			continue
		}
		ctx.Keywords = append([]string{}, family.keywords...)
		ctx.ExcludeTitleKeywords = append([]string{}, family.excludeTitles...)
		break
	}
	return ctx
}

// matchesFamily prefers a title match and falls back to the posting body.
func matchesFamily(family roleFamily, title, probe string) bool {
	for _, kw := range family.titleKeywords {
		if strings.Contains(title, textutil.Comparable(kw)) {
			return true
		}
	}
	if title != "" {
		return false
	}
	for _, kw := range family.titleKeywords {
		if strings.Contains(probe, textutil.Comparable(kw)) {
			return true
		}
	}
	return false
}
