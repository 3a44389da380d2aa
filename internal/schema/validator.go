package schema

import (
	"talkmigrate/internal/models"
)

// Entity tags the legacy collection a record came from.
type Entity string

const (
	EntityStory   Entity = "story"
	EntityUser    Entity = "user"
	EntityComment Entity = "comment"
	EntityAction  Entity = "action"
)

type ValidatorInterface interface {
	// Validate returns the name of the first variant the record fully matches.
	Validate(entity Entity, doc models.Document) (string, error)
}

// Validator tries each entity's closed set of shapes in a fixed priority order.
type Validator struct {
	variants map[Entity][]Shape
}

func NewValidator() ValidatorInterface {
	return &Validator{
		variants: map[Entity][]Shape{
			EntityStory:   {storyOrganic, storyImported},
			EntityUser:    {userOrganic, userImported},
			EntityComment: {commentOrganic, commentImported, commentDeleted},
			EntityAction:  {actionIgnored, actionRespect},
		},
	}
}

func (v *Validator) Validate(entity Entity, doc models.Document) (string, error) {
	shapes, ok := v.variants[entity]
	if !ok {
		return "", &models.SchemaViolation{Entity: string(entity), RecordID: doc.ID(), Fields: []string{"unknown entity type"}}
	}

	var closest *models.SchemaViolation
	for _, shape := range shapes {
		errs := shape.Check("", map[string]any(doc))
		errs = append(errs, invariants(entity, doc)...)
		if len(errs) == 0 {
			return shape.Name, nil
		}
		if closest == nil || len(errs) < len(closest.Fields) {
			closest = &models.SchemaViolation{
				Entity:   string(entity),
				RecordID: doc.ID(),
				Variant:  shape.Name,
				Fields:   errs,
			}
		}
	}
	return "", closest
}

// invariants holds cross-field checks a shape cannot express.
func invariants(entity Entity, doc models.Document) []string {
	if entity != EntityUser {
		return nil
	}
	profiles, ok := doc["profiles"].([]any)
	if ok && len(profiles) != 1 {
		return fail("profiles", "expected exactly one profile, got %d", len(profiles))
	}
	return nil
}
