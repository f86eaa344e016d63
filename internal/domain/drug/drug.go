package drug

import (
	"fmt"
	"strings"
)

// ID identifies one of the supported opioids.
type ID string

const (
	Fentanyl      ID = "Fentanyl"
	Remifentanil  ID = "Remifentanil"
	Morphine      ID = "Morphine"
	Hydromorphone ID = "Hydromorphone"
	Methadone     ID = "Methadone"
	Sufentanil    ID = "Sufentanil"
)

// All returns the supported drugs in display order.
func All() []ID {
	return []ID{Fentanyl, Remifentanil, Morphine, Hydromorphone, Methadone, Sufentanil}
}

var drugsByName = map[string]ID{
	"fentanyl":      Fentanyl,
	"remifentanil":  Remifentanil,
	"morphine":      Morphine,
	"hydromorphone": Hydromorphone,
	"methadone":     Methadone,
	"sufentanil":    Sufentanil,
}

// Parse maps a case-insensitive drug name to its ID.
func Parse(s string) (ID, error) {
	d, ok := drugsByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown drug: %s", s)
	}
	return d, nil
}

// Valid reports whether d is a supported drug.
func (d ID) Valid() bool {
	_, ok := drugsByName[strings.ToLower(string(d))]
	return ok
}

// MassUnit is the clinical mass unit class a drug is dosed in.
type MassUnit string

const (
	UnitMcg MassUnit = "mcg"
	UnitMg  MassUnit = "mg"
)

// Unit returns the clinical dosing unit for the drug. Morphine,
// hydromorphone and methadone are prescribed in mg; the rest in mcg.
func (d ID) Unit() MassUnit {
	if d.IsMgDosed() {
		return UnitMg
	}
	return UnitMcg
}

// IsMgDosed reports whether the drug belongs to the mg-dosed class.
func (d ID) IsMgDosed() bool {
	switch d {
	case Morphine, Hydromorphone, Methadone:
		return true
	}
	return false
}

// ScaleFactor converts a dose in the drug's clinical unit to the
// integrator's internal mcg basis: 1000 for mg-dosed drugs, 1 otherwise.
func (d ID) ScaleFactor() float64 {
	if d.IsMgDosed() {
		return 1000
	}
	return 1
}
