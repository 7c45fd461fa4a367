package model

import "time"

type Department struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	Name      string      `json:"name" gorm:"size:128;not null"`
	ParentID  *uint       `json:"parent_id" gorm:"index"`
	ManagerID *uint       `json:"manager_id"`
	Active    bool        `json:"active" gorm:"not null"`
	Parent    *Department `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Manager   *Employee   `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CompleteName joins the parent name and the department name ("Parent / Child").
// Only the directly loaded parent is considered.
func (d *Department) CompleteName() string {
	if d.Parent != nil && d.Parent.Name != "" {
		return d.Parent.Name + " / " + d.Name
	}
	return d.Name
}
