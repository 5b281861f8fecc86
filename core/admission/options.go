package admission

// Option is a selectable value of a draft field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options groups every selectable list of the application form.
type Options struct {
	Genders       []Option `json:"genders"`
	Countries     []Option `json:"countries"`
	Nationalities []Option `json:"nationalities"`
	DiplomaLevels []Option `json:"diploma_levels"`
	JobStatuses   []Option `json:"job_statuses"`
	HowHeard      []Option `json:"how_heard"`
	EnglishLevels []int    `json:"english_levels"`
}

var (
	Genders = []Option{
		{"Male", "Male"},
		{"Female", "Female"},
		{"Other", "Other"},
		{"Prefer not to say", "Prefer not to say"},
	}

	DiplomaLevels = []Option{
		{"Secondary School", "Secondary School"},
		{"Bachelor", "Bachelor's Degree"},
		{"Master", "Master's Degree"},
		{"PhD", "PhD"},
		{"No Option", "Other"},
	}

	JobStatuses = []Option{
		{"Student", "Student"},
		{"Employed", "Employed"},
		{"Unemployed", "Unemployed"},
		{"Self-employed", "Self-employed"},
		{"Freelancer", "Freelancer"},
		{"Retired", "Retired"},
	}

	HowHeard = []Option{
		{"Social Media", "Social Media"},
		{"Google Search", "Google Search"},
		{"Friend/Family", "Friend/Family"},
		{"Event/Workshop", "Event/Workshop"},
		{"Website", "Website"},
		{"Advertisement", "Advertisement"},
		{"Other", "Other"},
	}

	EnglishLevels = []int{1, 2, 3, 4, 5}

	// ISO 3166 code, country, nationality
	countries = [][3]string{
		{"NG", "Nigeria", "Nigerian"},
		{"GH", "Ghana", "Ghanaian"},
		{"KE", "Kenya", "Kenyan"},
		{"ZA", "South Africa", "South African"},
		{"EG", "Egypt", "Egyptian"},
		{"ET", "Ethiopia", "Ethiopian"},
		{"TZ", "Tanzania", "Tanzanian"},
		{"UG", "Uganda", "Ugandan"},
		{"RW", "Rwanda", "Rwandan"},
		{"SN", "Senegal", "Senegalese"},
		{"CI", "Ivory Coast", "Ivorian"},
		{"CM", "Cameroon", "Cameroonian"},
		{"MA", "Morocco", "Moroccan"},
		{"TN", "Tunisia", "Tunisian"},
		{"DZ", "Algeria", "Algerian"},
		{"GB", "United Kingdom", "British"},
		{"US", "United States", "American"},
		{"CA", "Canada", "Canadian"},
		{"DE", "Germany", "German"},
		{"FR", "France", "French"},
		{"ES", "Spain", "Spanish"},
		{"IT", "Italy", "Italian"},
		{"NL", "Netherlands", "Dutch"},
		{"IN", "India", "Indian"},
		{"CN", "China", "Chinese"},
		{"JP", "Japan", "Japanese"},
		{"BR", "Brazil", "Brazilian"},
		{"AU", "Australia", "Australian"},
		{"NZ", "New Zealand", "New Zealander"},
	}
)

// FormOptions returns the option lists rendered by the form.
func FormOptions() Options {
	opts := Options{
		Genders:       Genders,
		DiplomaLevels: DiplomaLevels,
		JobStatuses:   JobStatuses,
		HowHeard:      HowHeard,
		EnglishLevels: EnglishLevels,
		Countries:     make([]Option, 0, len(countries)),
		Nationalities: make([]Option, 0, len(countries)),
	}
	for _, c := range countries {
		opts.Countries = append(opts.Countries, Option{Value: c[0], Label: c[1]})
		opts.Nationalities = append(opts.Nationalities, Option{Value: c[0], Label: c[2]})
	}
	return opts
}
