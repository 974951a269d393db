// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemaedit

package schemaedit

import (
	"regexp"
	"strings"
)

// DraftInfo describes detected "$schema" dialect.
type DraftInfo struct {
	// Input is the raw "$schema" value.
	Input string
	// Canonical is normalized draft name such as "2020-12" or "draft-07".
	Canonical string
	// Supported reports whether walker keyword set covers this draft.
	Supported bool
}

// supportedDrafts lists dialects whose structural keywords are modeled.
var supportedDrafts = map[string]struct{}{
	"2020-12":  {},
	"2019-09":  {},
	"draft-07": {},
	"draft-06": {},
	"draft-05": {},
	"draft-04": {},
}

var (
	datedDraftPattern    = regexp.MustCompile(`(\d{4}-\d{2})`)
	numberedDraftPattern = regexp.MustCompile(`draft-0?(\d+)`)
)

// DetectDraft normalizes "$schema" URI or bare draft name.
func DetectDraft(value string) DraftInfo {
	info := DraftInfo{Input: value}
	text := strings.ToLower(strings.TrimSpace(value))
	if text == "" {
		return info
	}

	switch {
	case numberedDraftPattern.MatchString(text):
		match := numberedDraftPattern.FindStringSubmatch(text)
		number := match[1]
		if len(number) == 1 {
			number = "0" + number
		}

		info.Canonical = "draft-" + number
	case datedDraftPattern.MatchString(text):
		info.Canonical = datedDraftPattern.FindString(text)
	default:
		info.Canonical = strings.TrimRight(text, "#/")
	}

	_, info.Supported = supportedDrafts[info.Canonical]
	return info
}
