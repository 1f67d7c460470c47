package models

import "sort"

// Collection describes one of the record collections exposed through the generic
// records API
type Collection struct {
	Name     string `json:"name"`
	KeyField string `json:"keyField"`
	Prefix   string `json:"prefix"`
}

// Collection names referenced directly by the arrest registration workflow
const (
	PeopleCollection    = "people"
	CasesCollection     = "cases"
	LocationsCollection = "locations"
	ArrestsCollection   = "arrests"
	ChargesCollection   = "charges"
	UsersCollection     = "users"
)

var collections = map[string]Collection{
	"people":      {Name: "people", KeyField: "personID", Prefix: "PER"},
	"arrests":     {Name: "arrests", KeyField: "arrestID", Prefix: "ARR"},
	"cases":       {Name: "cases", KeyField: "caseID", Prefix: "CASE"},
	"charges":     {Name: "charges", KeyField: "chargeID", Prefix: "CHG"},
	"officers":    {Name: "officers", KeyField: "officerID", Prefix: "OFF"},
	"departments": {Name: "departments", KeyField: "departmentID", Prefix: "DEP"},
	"incidents":   {Name: "incidents", KeyField: "incidentID", Prefix: "INC"},
	"locations":   {Name: "locations", KeyField: "locationID", Prefix: "LOC"},
	"evidence":    {Name: "evidence", KeyField: "evidenceID", Prefix: "EVD"},
	"forensics":   {Name: "forensics", KeyField: "forensicID", Prefix: "FOR"},
	"reports":     {Name: "reports", KeyField: "reportID", Prefix: "REP"},
	"prisons":     {Name: "prisons", KeyField: "prisonID", Prefix: "PRI"},
	"sentences":   {Name: "sentences", KeyField: "sentenceID", Prefix: "SEN"},
	"vehicles":    {Name: "vehicles", KeyField: "vehicleID", Prefix: "VEH"},
	"weapons":     {Name: "weapons", KeyField: "weaponID", Prefix: "WEA"},
}

// LookupCollection returns the registry entry for name
func LookupCollection(name string) (Collection, bool) {
	c, ok := collections[name]
	return c, ok
}

// Collections returns every registered collection sorted by name
func Collections() []Collection {
	all := make([]Collection, 0, len(collections))
	for _, c := range collections {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}
