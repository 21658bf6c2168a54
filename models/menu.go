package models

// MenuItem is a single catalog entry the assistant can sell.
type MenuItem struct {
	ID       int     `bson:"id" json:"id" yaml:"id"`
	Name     string  `bson:"name" json:"name" yaml:"name"`
	Price    float64 `bson:"price" json:"price" yaml:"price"`
	Category string  `bson:"category,omitempty" json:"category,omitempty" yaml:"category,omitempty"`
}
