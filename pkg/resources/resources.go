package resources

import "errors"

var ErrMissingSchool = errors.New("missing school parameter")

// Resource is a single support option shown to the student.
type Resource struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Url         string `json:"url,omitempty"`
}

// Overview pairs the always-available national resources with the ones
// found near the student's campus.
type Overview struct {
	Global         []Resource `json:"global"`
	SchoolSpecific []Resource `json:"school_specific"`
}

// GlobalResources are nationwide crisis and support lines. They are
// returned regardless of whether a campus lookup succeeds.
var GlobalResources = []Resource{
	{Name: "988 Suicide & Crisis Lifeline", Description: "24/7 free & confidential", Url: "https://988lifeline.org"},
	{Name: "Crisis Text Line", Description: "Text HOME to 741741 (US/CA)", Url: "https://www.crisistextline.org"},
	{Name: "7 Cups", Description: "Free emotional support & affordable therapy", Url: "https://www.7cups.com"},
	{Name: "SAMHSA National Helpline", Description: "Treatment referral & info", Url: "https://findtreatment.gov"},
}
