// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package learningpath

// LicenseCode identifies a content license.
type LicenseCode string

const (
	LicenseCCBY        LicenseCode = "CC-BY-4.0"
	LicenseCCBYSA      LicenseCode = "CC-BY-SA-4.0"
	LicenseCCBYNC      LicenseCode = "CC-BY-NC-4.0"
	LicenseCCBYND      LicenseCode = "CC-BY-ND-4.0"
	LicenseCCBYNCSA    LicenseCode = "CC-BY-NC-SA-4.0"
	LicenseCCBYNCND    LicenseCode = "CC-BY-NC-ND-4.0"
	LicenseCC0         LicenseCode = "CC0-1.0"
	LicensePD          LicenseCode = "PD"
	LicenseCopyrighted LicenseCode = "COPYRIGHTED"
	LicenseNA          LicenseCode = "N/A"
)

// licenseURLs holds the canonical deed for licenses that have one.
var licenseURLs = map[LicenseCode]string{
	LicenseCCBY:     "https://creativecommons.org/licenses/by/4.0/",
	LicenseCCBYSA:   "https://creativecommons.org/licenses/by-sa/4.0/",
	LicenseCCBYNC:   "https://creativecommons.org/licenses/by-nc/4.0/",
	LicenseCCBYND:   "https://creativecommons.org/licenses/by-nd/4.0/",
	LicenseCCBYNCSA: "https://creativecommons.org/licenses/by-nc-sa/4.0/",
	LicenseCCBYNCND: "https://creativecommons.org/licenses/by-nc-nd/4.0/",
	LicenseCC0:      "https://creativecommons.org/publicdomain/zero/1.0/",
	LicensePD:       "https://creativecommons.org/publicdomain/mark/1.0/",
}

// IsValid reports whether c is a recognised [LicenseCode].
func (c LicenseCode) IsValid() bool {
	switch c {
	case LicenseCCBY, LicenseCCBYSA, LicenseCCBYNC, LicenseCCBYND, LicenseCCBYNCSA,
		LicenseCCBYNCND, LicenseCC0, LicensePD, LicenseCopyrighted, LicenseNA:
		return true
	}
	return false
}

// AuthorType is the role a contributor played.
type AuthorType string

const (
	AuthorOriginator   AuthorType = "originator"
	AuthorWriter       AuthorType = "writer"
	AuthorPhotographer AuthorType = "photographer"
	AuthorIllustrator  AuthorType = "illustrator"
	AuthorTranslator   AuthorType = "translator"
	AuthorEditorial    AuthorType = "editorial"
	AuthorComposer     AuthorType = "composer"
	AuthorScriptwriter AuthorType = "scriptwriter"
	AuthorPublisher    AuthorType = "publisher"
	AuthorFacilitator  AuthorType = "facilitator"
	AuthorDistributor  AuthorType = "distributor"
	AuthorSupplier     AuthorType = "supplier"
	AuthorRightsholder AuthorType = "rightsholder"
	AuthorProcessor    AuthorType = "processor"
)

// IsValid reports whether t is a recognised [AuthorType].
func (t AuthorType) IsValid() bool {
	switch t {
	case AuthorOriginator, AuthorWriter, AuthorPhotographer, AuthorIllustrator, AuthorTranslator,
		AuthorEditorial, AuthorComposer, AuthorScriptwriter, AuthorPublisher, AuthorFacilitator,
		AuthorDistributor, AuthorSupplier, AuthorRightsholder, AuthorProcessor:
		return true
	}
	return false
}

// Author is a named contributor.
type Author struct {
	Type AuthorType `json:"type"`
	Name string     `json:"name"`
}

// License is a license code with optional human-readable details.
type License struct {
	License     LicenseCode `json:"license"`
	Description *string     `json:"description,omitempty"`
	URL         *string     `json:"url,omitempty"`
}

// IsSet reports whether a license has been chosen.
func (l License) IsSet() bool {
	return l.License != ""
}

// Publishable reports whether the license allows the path to be published.
// N/A is a valid stored value but counts as no license.
func (l License) Publishable() bool {
	return l.IsSet() && l.License != LicenseNA
}

// WithDefaults fills URL from the known license deeds when the caller left it empty.
func (l License) WithDefaults() License {
	if l.URL == nil {
		if url, ok := licenseURLs[l.License]; ok {
			l.URL = &url
		}
	}
	return l
}

func (l License) clone() License {
	l.Description = clonePtr(l.Description)
	l.URL = clonePtr(l.URL)
	return l
}

// Copyright is the license of a path plus the people who made it.
type Copyright struct {
	License      License  `json:"license"`
	Contributors []Author `json:"contributors"`
}
