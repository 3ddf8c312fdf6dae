package domain

// PetType is the backend's pet species enumeration.
type PetType string

// Known pet types.
const (
	TypeVegeta  PetType = "VEGETA"
	TypeFrezer  PetType = "FREZER"
	TypeMrSatan PetType = "MR_SATAN"
	TypeGoku    PetType = "GOKU"
	TypeKrillin PetType = "KRILLIN"
)

// ValidTypes lists every pet type the backend accepts, in display order.
var ValidTypes = []PetType{
	TypeVegeta,
	TypeFrezer,
	TypeMrSatan,
	TypeGoku,
	TypeKrillin,
}

var validTypeSet = func() map[PetType]bool {
	m := make(map[PetType]bool, len(ValidTypes))
	for _, t := range ValidTypes {
		m[t] = true
	}
	return m
}()

// ValidType returns true if the given type is a known pet type.
func ValidType(t PetType) bool {
	return validTypeSet[t]
}

// Pet is a virtual pet owned by the authenticated user. The backend record is
// authoritative; this struct is a locally cached, possibly stale copy that is
// replaced wholesale by each successful create/update response.
type Pet struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        PetType `json:"type"`
	Mood        string  `json:"mood"`
	EnergyLevel int     `json:"energyLevel"`
	HungerLevel int     `json:"hungerLevel"`
}
