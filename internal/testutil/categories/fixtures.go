package categories

// Fixture represents a predefined set of categories for testing.
type Fixture interface {
	// Name returns the fixture's descriptive name.
	Name() string

	// Categories returns the category ids included in this fixture.
	Categories() []CategoryID
}

type fixture struct {
	name       string
	categories []CategoryID
}

func (f *fixture) Name() string             { return f.name }
func (f *fixture) Categories() []CategoryID { return f.categories }

// Predefined fixtures for common test scenarios.
var (
	// FixtureMinimal is enough for most classifier tests.
	FixtureMinimal = &fixture{
		name: "Minimal",
		categories: []CategoryID{
			CategoryTools,
			CategoryScrews,
			CategoryElectrical,
		},
	}

	// FixtureStore resembles a small hardware store catalog.
	FixtureStore = &fixture{
		name: "Store",
		categories: []CategoryID{
			CategoryTools,
			CategoryScrews,
			CategoryElectrical,
			CategoryPlumbing,
			CategoryPaint,
			CategoryGarden,
			CategoryPowerTools,
		},
	}

	// FixtureComprehensive contains every known category.
	FixtureComprehensive = &fixture{
		name: "Comprehensive",
		categories: []CategoryID{
			CategoryTools,
			CategoryScrews,
			CategoryElectrical,
			CategoryPlumbing,
			CategoryPaint,
			CategoryGarden,
			CategoryPowerTools,
			CategoryConstruct,
			CategorySafetyGear,
			CategoryAdhesiveSet,
		},
	}
)

// AllFixtures returns all predefined fixtures.
func AllFixtures() []Fixture {
	return []Fixture{FixtureMinimal, FixtureStore, FixtureComprehensive}
}
