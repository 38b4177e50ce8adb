package notmodels

import (
	"gorm.io/modelcheck/internal/testmodels"
	"gorm.io/modelcheck/model"
)

func init() {
	model.Register(NotModel{})
}

// NotModel does not embed model.Base
type NotModel struct {
	Name string
}

func (n *NotModel) Children() *model.Relationship {
	return new(testmodels.ChildModel).HasMany(&testmodels.ChildModel{})
}
