package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"doccomplete/internal/check"
	"doccomplete/internal/shared/version"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"
)

// ruleNames maps finding codes to SARIF rule names.
var ruleNames = map[string]string{
	check.CodeDocstrMissing:            "DocstringMissing",
	check.CodeArgsSectionMissing:       "ArgsSectionMissing",
	check.CodeArgsSectionUnexpected:    "ArgsSectionUnexpected",
	check.CodeMultArgsSections:         "MultipleArgsSections",
	check.CodeArgMissing:               "ArgumentNotDescribed",
	check.CodeArgUnexpected:            "ArgumentNotInSignature",
	check.CodeArgDuplicated:            "ArgumentDuplicated",
	check.CodeReturnsSectionMissing:    "ReturnsSectionMissing",
	check.CodeReturnsSectionUnexpected: "ReturnsSectionUnexpected",
	check.CodeMultReturnsSections:      "MultipleReturnsSections",
	check.CodeYieldsSectionMissing:     "YieldsSectionMissing",
	check.CodeYieldsSectionUnexpected:  "YieldsSectionUnexpected",
	check.CodeMultYieldsSections:       "MultipleYieldsSections",
	check.CodeRaisesSectionMissing:     "RaisesSectionMissing",
	check.CodeRaisesSectionUnexpected:  "RaisesSectionUnexpected",
	check.CodeMultRaisesSections:       "MultipleRaisesSections",
	check.CodeExcMissing:               "ExceptionNotDescribed",
	check.CodeExcUnexpected:            "ExceptionNotRaised",
	check.CodeReRaiseUndocumented:      "ReRaiseNotDescribed",
	check.CodeExcDuplicated:            "ExceptionDuplicated",
	check.CodeAttrsSectionMissing:      "AttrsSectionMissing",
	check.CodeAttrsSectionUnexpected:   "AttrsSectionUnexpected",
	check.CodeMultAttrsSections:        "MultipleAttrsSections",
	check.CodeAttrMissing:              "AttributeNotDescribed",
	check.CodeAttrUnexpected:           "AttributeNotAssigned",
	check.CodeAttrDuplicated:           "AttributeDuplicated",
}

type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document from the findings. File
// URIs are made relative to projectRoot; absolute paths are never included
// so that reports are safe to share.
func GenerateSARIF(projectRoot string, files []FileProblems) ([]byte, error) {
	results := make([]sarifResult, 0)
	seenCodes := make(map[string]bool)

	for _, file := range files {
		uri := relativeURI(projectRoot, file.Path)
		for _, problem := range file.Problems {
			seenCodes[problem.Code] = true
			results = append(results, sarifResult{
				RuleID:  problem.Code,
				Level:   "warning",
				Message: sarifMessage{Text: problem.Msg},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{
							URI:       uri,
							URIBaseID: "%SRCROOT%",
						},
						Region: &sarifRegion{
							StartLine:   problem.Line,
							StartColumn: problem.Col + 1,
						},
					},
				}},
			})
		}
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "doccomplete",
						Version: version.Version,
						Rules:   buildSARIFRules(seenCodes),
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

// buildSARIFRules returns only the rules that occur in the findings.
func buildSARIFRules(seenCodes map[string]bool) []sarifRule {
	codes := make([]string, 0, len(seenCodes))
	for code := range seenCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rules := make([]sarifRule, 0, len(codes))
	for _, code := range codes {
		name := ruleNames[code]
		if name == "" {
			name = code
		}
		rules = append(rules, sarifRule{
			ID:               code,
			Name:             name,
			ShortDescription: sarifMessage{Text: fmt.Sprintf("Docstring completeness rule %s.", code)},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
		})
	}
	return rules
}

// relativeURI converts an absolute file path to a forward-slash relative
// URI anchored at projectRoot.
func relativeURI(projectRoot, filePath string) string {
	if projectRoot != "" && filepath.IsAbs(filePath) {
		rel, err := filepath.Rel(projectRoot, filePath)
		if err == nil {
			filePath = rel
		}
	}
	// SARIF URIs use forward slashes.
	return filepath.ToSlash(filePath)
}
