package models

// Provider is a master offering services from one or more categories.
// Reference data owned by the catalog feed.
type Provider struct {
	ID              string   `bson:"id" json:"id"`
	Name            string   `bson:"name" json:"name"`
	Categories      []string `bson:"categories" json:"categories"` // service categories the provider covers
	Rating          float64  `bson:"rating" json:"rating"`
	ExperienceYears int      `bson:"experienceYears,omitempty" json:"experienceYears,omitempty"`
	Bio             string   `bson:"bio,omitempty" json:"bio,omitempty"`
}

// Covers reports whether the provider services the given category.
func (p Provider) Covers(category string) bool {
	for _, c := range p.Categories {
		if c == category {
			return true
		}
	}
	return false
}
