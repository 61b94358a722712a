package analyzer

// Length bounds are in characters (runes).
const (
	TitleMinChars       = 30
	TitleMaxChars       = 60
	DescriptionMinChars = 70
	DescriptionMaxChars = 160

	WordCountCorrect    = 300
	WordCountImprovable = 150

	// Ratios of images with alt / labelled controls.
	CoverageCorrect    = 1.0
	CoverageImprovable = 0.5

	InternalLinksCorrect = 5

	// Share of links with empty or generic text still tolerated as improvable.
	GenericLinkTolerance = 0.2

	SocialProfilesCorrect = 2

	// Below this many words language detection is not attempted.
	LanguageMinWords = 20
)
