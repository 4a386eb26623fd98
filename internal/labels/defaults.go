package labels

var categoryOrder = []string{
	"entryTypes", "types", "subTypes", "companies", "assets", "targets", "tumorTypes",
	"linesOfTherapy", "isotopes", "isotopeTypes", "phases", "trialIds", "assetFocus",
	"regions", "userGroups", "uploadTeams", "docCategories", "authors", "tags",
}

// Defaults returns the lists a fresh installation starts with.
func Defaults() map[string][]string {
	return map[string][]string{
		"entryTypes": {"News", "Publication", "Internal CI"},
		"types": {
			"Commercial", "Clinical", "Regulatory", "Partnership", "Funding",
			"Technology", "Manufacturing", "Supply", "Research", "Market Access",
		},
		"subTypes": {
			"Trial Initiation", "Trial Results", "Approval", "Licensing Agreement", "M&A",
			"Series A", "Series B", "Series C", "IPO", "Patent", "Expedited Designation",
			"Reimbursement", "Launch", "Supply Agreement", "Commercial Updates", "Trial Stop",
			"Conference Data", "Clinical Updates", "Submission", "Guidelines", "Regulatory Updates",
			"Collaboration", "Joint Venture", "Follow-on", "Grant", "Pricing", "HTA",
			"New Platform", "Facility", "Capacity", "Supply Chain", "Isotope Supply", "Logistics",
			"Pre-clinical Data", "Publication",
		},
		"regions":      {"Global", "North America", "Europe", "APAC", "LATAM", "MENA"},
		"isotopes":     {"177Lu", "225Ac", "212Pb", "68Ga", "131I", "64Cu", "223Ra"},
		"isotopeTypes": {"Alpha", "Beta"},
		"targets":      {"PSMA", "SSTR", "FAP", "GRPR", "CD33", "HER2", "Novel"},
		"tumorTypes": {
			"Prostate Cancer", "Neuroendocrine Tumors", "Glioblastoma", "Lung Cancer",
			"Breast Cancer", "General Oncology",
		},
		"assetFocus": {"Therapeutic", "Diagnostic", "Theranostic"},
		"phases":     {"Pre-clinical", "Phase 1", "Phase 1/2", "Phase 2", "Phase 3", "Pre-registration", "Approved"},
		"companies": {
			"Novartis", "Bayer", "Telix", "Lantheus", "Fusion Pharma", "RayzeBio", "Curium",
			"AstraZeneca", "Eli Lilly", "Bristol Myers Squibb",
		},
		"assets":         {"Pluvicto", "Lutathera", "Actinium-225", "PNT2002", "TLX591", "FPI-2265"},
		"trialIds":       {"NCT05551234", "NCT04689828", "NCT03511664"},
		"linesOfTherapy": {"Neoadjuvant", "Adjuvant", "1L", "1L+", "2L", "2L+", "3L", "3L+", "4L", "4L+"},
		"userGroups":     {"All Users", "Executive Leadership", "Commercial Team", "Medical Affairs"},
		"uploadTeams": {
			"CI Team", "Vendor Team", "Medical Affairs", "Strategy", "Business Development",
			"R&D", "Manufacturing Strategy", "Commercial",
		},
		"docCategories": {"Newsletter", "Scientific Publication", "Conference Coverage", "Internal Report"},
		"authors": {
			"CI Team", "Medical Affairs Team", "Financial Analysis Team", "Commercial Strategy",
			"Supply Chain Unit", "Dr. Emily Weiss",
		},
		"tags": {"Market Share", "Regulatory", "Clinical Data", "Supply Chain", "Competitor", "Strategy", "Earnings"},
	}
}
