package core

// Environment is the deployment environment of the service.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

func (e Environment) String() string { return string(e) }

// IsProduction reports whether the environment corresponds to production.
func (e Environment) IsProduction() bool { return e == Production }

// ParseEnvironment normalises the provided value into a known environment.
// Unknown values fall back to Development so the service can still start.
func ParseEnvironment(v string) Environment {
	switch Environment(v) {
	case Production:
		return Production
	case Staging:
		return Staging
	default:
		return Development
	}
}
