package domain

// ResourceType is the discriminant of a content resource. The set is open:
// unknown types are stored and traversed like any other resource.
type ResourceType = string

const (
	TypeWorkshop ResourceType = "workshop"
	TypeSection  ResourceType = "section"
	TypeLesson   ResourceType = "lesson"
	TypeSolution ResourceType = "solution"
	TypeTutorial ResourceType = "tutorial"
	TypeExercise ResourceType = "exercise"
	TypePost     ResourceType = "post"
)

// KnownResourceTypes lists the types the CLI offers for completion and forms.
var KnownResourceTypes = []string{
	TypeWorkshop, TypeTutorial, TypeSection, TypeLesson,
	TypeExercise, TypeSolution, TypePost,
}

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductArchived ProductStatus = "archived"
)

type ProductType string

const (
	ProductSelfPaced  ProductType = "self-paced"
	ProductLive       ProductType = "live"
	ProductMembership ProductType = "membership"
	ProductCohort     ProductType = "cohort"
)

// ValidProductTypes is the canonical set of accepted product type strings.
var ValidProductTypes = map[string]bool{
	"self-paced": true, "live": true, "membership": true, "cohort": true,
}
