package submodels

import (
	"gorm.io/modelcheck/internal/testmodels"
	"gorm.io/modelcheck/model"
)

func init() {
	model.Register(SubModel{})
}

// SubModel plain model in a sub package, ParentModel does not declare the back relation
type SubModel struct {
	model.Base
	ID            uint
	ParentModelID uint
}

func (s *SubModel) Parent() *model.Relationship {
	return s.BelongsTo(&testmodels.ParentModel{})
}
