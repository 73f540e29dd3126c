package faker

// =============================================================================
// Word Lists: People
// =============================================================================

var firstNames = []string{
	"John", "Jane", "Bob", "Alice", "Charlie", "Diana", "Edward", "Fiona",
	"George", "Hannah", "Ivan", "Julia", "Kevin", "Laura", "Marcus", "Nina",
}

var lastNames = []string{
	"Smith", "Doe", "Johnson", "Williams", "Brown", "Davis", "Miller", "Wilson",
	"Moore", "Taylor", "Anderson", "Thomas", "Jackson", "White", "Harris", "Martin",
}

var emailDomains = []string{"example.com", "test.com", "mock.io", "demo.org"}

var jobLevels = []string{"Senior", "Junior", "Lead", "Principal", "Staff"}

var jobFields = []string{
	"Software", "Data", "Product", "Marketing", "Sales",
	"Operations", "Security", "Infrastructure", "Quality", "Research",
}

var jobRoles = []string{
	"Engineer", "Analyst", "Manager", "Designer", "Architect",
	"Consultant", "Developer", "Specialist", "Coordinator", "Strategist",
}

// =============================================================================
// Word Lists: Places
// =============================================================================

var streets = []string{"Main St", "Oak Ave", "Elm St", "Park Blvd", "Cedar Ln", "Maple Dr", "Pine Rd", "Lake Way"}

// cities and states are index-aligned.
var cities = []string{"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Seattle", "Denver", "Boston"}
var states = []string{"NY", "CA", "IL", "TX", "AZ", "WA", "CO", "MA"}

var countries = []string{
	"United States", "Canada", "Mexico", "Brazil", "United Kingdom", "Germany",
	"France", "Spain", "Italy", "Japan", "Australia", "India",
}

// =============================================================================
// Word Lists: Commerce
// =============================================================================

var companies = []string{
	"Acme Corp", "Globex Inc", "Initech", "Umbrella Corp",
	"Stark Industries", "Wayne Enterprises", "Cyberdyne Systems", "Tyrell Corp",
}

var productAdjectives = []string{
	"Rustic", "Elegant", "Handcrafted", "Refined", "Sleek",
	"Practical", "Modern", "Vintage", "Premium", "Compact",
}

var productMaterials = []string{
	"Steel", "Wooden", "Granite", "Rubber", "Cotton",
	"Leather", "Bamboo", "Bronze", "Ceramic", "Glass",
}

var productNouns = []string{
	"Chair", "Table", "Lamp", "Keyboard", "Mouse",
	"Backpack", "Watch", "Wallet", "Notebook", "Mug",
}

var colors = []string{
	"Crimson", "Azure", "Emerald", "Ivory", "Coral",
	"Indigo", "Amber", "Jade", "Scarlet", "Turquoise",
}

var currencyCodes = []string{
	"USD", "EUR", "GBP", "JPY", "AUD", "CAD", "CHF", "CNY", "SEK", "NZD",
}

// =============================================================================
// Word Lists: Text and Data
// =============================================================================

var words = []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "theta", "lambda", "sigma", "omega"}

var sentences = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Lorem ipsum dolor sit amet.",
	"Everything is proceeding as planned.",
	"All systems are operating normally.",
	"This record was generated for testing.",
}

var mimeTypes = []string{
	"application/json", "application/pdf", "application/zip",
	"text/html", "text/plain", "text/csv",
	"image/png", "image/jpeg", "image/svg+xml",
	"video/mp4",
}
