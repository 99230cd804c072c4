package domain

// SupportType discriminates the three ticket categories. Each value maps
// to a fixed row of the tipos_soporte-style reference table.
type SupportType string

const (
	SupportTypeCreditNote SupportType = "CREDIT_NOTE"
	SupportTypePlatform   SupportType = "PLATFORM"
	SupportTypeOther      SupportType = "OTHER"
)

// Reference-table ids, seeded by migration. The credit-note category has
// always been id 1.
const (
	supportTypeIDCreditNote = 1
	supportTypeIDPlatform   = 2
	supportTypeIDOther      = 3
)

// ID returns the reference-table id for the support type, 0 if unknown.
func (s SupportType) ID() int {
	switch s {
	case SupportTypeCreditNote:
		return supportTypeIDCreditNote
	case SupportTypePlatform:
		return supportTypeIDPlatform
	case SupportTypeOther:
		return supportTypeIDOther
	}
	return 0
}

// Valid reports whether s names a known category.
func (s SupportType) Valid() bool {
	return s.ID() != 0
}

// SupportTypeFromID maps a reference-table id back to its category.
func SupportTypeFromID(id int) (SupportType, bool) {
	switch id {
	case supportTypeIDCreditNote:
		return SupportTypeCreditNote, true
	case supportTypeIDPlatform:
		return SupportTypePlatform, true
	case supportTypeIDOther:
		return SupportTypeOther, true
	}
	return "", false
}

// SupportTypeInfo is a reference-table row.
type SupportTypeInfo struct {
	ID   int
	Name string
}
