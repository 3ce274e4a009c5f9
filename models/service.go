package models

// ServiceOffering is an entry of the salon's service catalog. Reference data:
// the engine never mutates it, it is owned by the catalog feed.
type ServiceOffering struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Price       int    `bson:"price" json:"price"`             // minor currency units
	DurationMin int    `bson:"durationMin" json:"durationMin"` // service length in minutes
	Category    string `bson:"category" json:"category"`       // e.g. "haircut", "beard"
}
