package config

const (
	// MaxAppNameLength is the maximum length for app names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxAppNameLength = 255

	// MaxAppIntroLength is the maximum length for app intro text.
	MaxAppIntroLength = 2000

	// MaxCollaboratorTargets is the maximum number of principals one
	// updateCollaborators batch may address. Batches run in a single
	// transaction; unbounded batches would hold the transaction open
	// for too long.
	MaxCollaboratorTargets = 100
)
