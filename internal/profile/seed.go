package profile

// SeedFamilies returns the built-in demonstration roster used when no roster
// file is configured.
func SeedFamilies() *Families {
	return &Families{
		Items: []*FamilyProfile{
			{
				ID:              "F001",
				FamilyType:      "Married Couple",
				AgeRange:        "30-45",
				Interests:       []string{"outdoor activities", "education", "community service"},
				Specializations: []string{"children with learning differences", "teens"},
				Location:        "Boston Metro",
				HomeType:        "Single family home with yard",
				Pets:            "Two friendly dogs",
				Values:          "Education, creativity, outdoor activities",
			},
			{
				ID:              "F002",
				FamilyType:      "Single Parent",
				AgeRange:        "35-50",
				Interests:       []string{"art", "music", "cooking"},
				Specializations: []string{"young children", "artistic development"},
				Location:        "Western Massachusetts",
				HomeType:        "Cozy apartment with art studio",
				Pets:            "One cat",
				Values:          "Creativity, self-expression, academic achievement",
			},
			{
				ID:              "F003",
				FamilyType:      "Same-Sex Couple",
				AgeRange:        "28-42",
				Interests:       []string{"sports", "travel", "volunteering"},
				Specializations: []string{"athletic children", "cultural diversity"},
				Location:        "Central Massachusetts",
				HomeType:        "Suburban home with sports facilities",
				Pets:            "None",
				Values:          "Physical activity, cultural awareness, community involvement",
			},
		},
	}
}
