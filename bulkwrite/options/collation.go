// Copyright (C) MongoDB, Inc. 2025-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package options

import (
	"github.com/ewall-cauc/mongo-cxx-driver/document"
)

// Collation allows users to specify language-specific rules for string
// comparison, such as rules for lettercase and accent marks.
type Collation struct {
	Locale          string `json:"locale,omitempty"`          // The locale
	CaseLevel       bool   `json:"caseLevel,omitempty"`       // The case level
	CaseFirst       string `json:"caseFirst,omitempty"`       // The case ordering
	Strength        int    `json:"strength,omitempty"`        // The number of comparison levels to use
	NumericOrdering bool   `json:"numericOrdering,omitempty"` // Whether to order numbers based on numerical order and not collation order
	Alternate       string `json:"alternate,omitempty"`       // Whether spaces and punctuation are considered base characters
	MaxVariable     string `json:"maxVariable,omitempty"`     // Which characters are affected by alternate: "shifted"
	Backwards       bool   `json:"backwards,omitempty"`       // Causes secondary differences to be considered in reverse order, as it is done in the French language
}

// Document converts the Collation to a document.D, leaving out zero-valued
// fields.
func (co *Collation) Document() document.D {
	var doc document.D
	if co.Locale != "" {
		doc = append(doc, document.E{Key: "locale", Value: co.Locale})
	}
	if co.CaseLevel {
		doc = append(doc, document.E{Key: "caseLevel", Value: true})
	}
	if co.CaseFirst != "" {
		doc = append(doc, document.E{Key: "caseFirst", Value: co.CaseFirst})
	}
	if co.Strength != 0 {
		doc = append(doc, document.E{Key: "strength", Value: int32(co.Strength)})
	}
	if co.NumericOrdering {
		doc = append(doc, document.E{Key: "numericOrdering", Value: true})
	}
	if co.Alternate != "" {
		doc = append(doc, document.E{Key: "alternate", Value: co.Alternate})
	}
	if co.MaxVariable != "" {
		doc = append(doc, document.E{Key: "maxVariable", Value: co.MaxVariable})
	}
	if co.Backwards {
		doc = append(doc, document.E{Key: "backwards", Value: true})
	}
	return doc
}
