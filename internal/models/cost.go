package models

// CostType categorizes a cost record.
type CostType string

const (
	CostTypeFood      CostType = "FOOD"
	CostTypeTransport CostType = "TRANSPORT"
	CostTypeHousing   CostType = "HOUSING"
	CostTypeHealth    CostType = "HEALTH"
	CostTypeEducation CostType = "EDUCATION"
	CostTypeLeisure   CostType = "LEISURE"
	CostTypeOther     CostType = "OTHER"
)

// Valid reports whether t is a known cost type.
func (t CostType) Valid() bool {
	switch t {
	case CostTypeFood, CostTypeTransport, CostTypeHousing, CostTypeHealth,
		CostTypeEducation, CostTypeLeisure, CostTypeOther:
		return true
	}
	return false
}

// Cost represents a one-off cost incurred by a user. The duplicate key for
// costs is (user, cost type, date); the backing unique index lives in the
// SQL migrations.
type Cost struct {
	RecordBase
	CostType    CostType `gorm:"type:varchar(20);not null;index" json:"cost_type"`
	Observation string   `gorm:"not null" json:"observation"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
