package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Car type categories
const (
	Category3Car = "3 CAR"
	Category4Car = "4 CAR"
)

// CarType is a kind of car, e.g. "DM 3 CAR", grouped under a unit category
type CarType struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"not null;uniqueIndex"`
	Category string `json:"category" gorm:"not null"`
}

// TableName specifies the table name for CarType Model
func (CarType) TableName() string {
	return "car_types"
}

// TrainUnit is one 3-car or 4-car unit. Two units make up a train.
type TrainUnit struct {
	ID          string `json:"id" gorm:"primaryKey"`
	UnitNumber  string `json:"unit_number" gorm:"column:unit_number;not null;uniqueIndex"`
	TrainNumber int    `json:"train_number" gorm:"column:train_number;index"`
	TrainName   string `json:"train_name" gorm:"column:train_name"`
	Phase       string `json:"phase"`
}

// TableName specifies the table name for TrainUnit Model
func (TrainUnit) TableName() string {
	return "train_units"
}

// TrainLabel renders a train number the way the depot writes it (T01..T60)
func TrainLabel(n int) string {
	return fmt.Sprintf("T%02d", n)
}

// Car is a physical car belonging to a unit
type Car struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	CarNumber   string     `json:"car_number" gorm:"column:car_number"`
	TrainUnitID *string    `json:"train_unit_id" gorm:"column:train_unit_id;index"`
	TrainUnit   *TrainUnit `json:"train_units,omitempty" gorm:"foreignKey:TrainUnitID"`
	CarTypeID   *string    `json:"car_type_id" gorm:"column:car_type_id"`
	CarType     *CarType   `json:"car_types,omitempty" gorm:"foreignKey:CarTypeID"`
}

// TableName specifies the table name for Car Model
func (Car) TableName() string {
	return "cars"
}

func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (u *TrainUnit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (t *CarType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
