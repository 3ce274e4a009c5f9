package catalog

import "github.com/vvladislovv/buitifal/models"

// DefaultFeed returns the salon's built-in catalog.
func DefaultFeed() *StaticFeed {
	services := []models.ServiceOffering{
		{
			ID:          "1",
			Name:        "Men's haircut",
			Description: "Professional haircut with styling",
			Price:       1500,
			DurationMin: 60,
			Category:    "haircut",
		},
		{
			ID:          "2",
			Name:        "Beard and mustache",
			Description: "Beard trim and shaping",
			Price:       800,
			DurationMin: 30,
			Category:    "beard",
		},
		{
			ID:          "3",
			Name:        "Straight razor shave",
			Description: "Classic shave with a hot towel",
			Price:       1200,
			DurationMin: 45,
			Category:    "shave",
		},
		{
			ID:          "4",
			Name:        "All-inclusive package",
			Description: "Haircut + beard + styling + mask",
			Price:       2800,
			DurationMin: 90,
			Category:    "complex",
		},
		{
			ID:          "5",
			Name:        "Hair styling",
			Description: "Styling with professional products",
			Price:       600,
			DurationMin: 30,
			Category:    "styling",
		},
		{
			ID:          "6",
			Name:        "Coloring",
			Description: "Hair coloring of any complexity",
			Price:       3500,
			DurationMin: 120,
			Category:    "coloring",
		},
	}

	providers := []models.Provider{
		{
			ID:              "1",
			Name:            "Alexey",
			Categories:      []string{"haircut", "beard", "styling"},
			Rating:          4.9,
			ExperienceYears: 8,
			Bio:             "Specializes in classic and modern haircuts",
		},
		{
			ID:              "2",
			Name:            "Dmitry",
			Categories:      []string{"shave", "beard", "complex"},
			Rating:          5.0,
			ExperienceYears: 12,
			Bio:             "Straight razor and beard shaping expert",
		},
		{
			ID:              "3",
			Name:            "Maxim",
			Categories:      []string{"coloring", "styling", "complex"},
			Rating:          4.8,
			ExperienceYears: 6,
			Bio:             "Colorist and stylist",
		},
		{
			ID:              "4",
			Name:            "Ivan",
			Categories:      []string{"haircut", "beard", "shave"},
			Rating:          4.7,
			ExperienceYears: 5,
			Bio:             "Specializes in men's haircuts",
		},
	}

	return NewStaticFeed(services, providers)
}
