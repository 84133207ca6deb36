package models

// Owner is the landlord contact for a property.
type Owner struct {
	Name  string `yaml:"name" json:"name"`
	Phone string `yaml:"phone" json:"phone"`
	Email string `yaml:"email" json:"email"`
}

// Property is a rental listing from the catalog.
type Property struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Location    string   `yaml:"location" json:"location"`
	Bedrooms    int      `yaml:"bedrooms" json:"bedrooms"`
	Bathrooms   int      `yaml:"bathrooms" json:"bathrooms"`
	Price       int      `yaml:"price" json:"price"`
	Description string   `yaml:"description" json:"description"`
	Services    []string `yaml:"services" json:"services"`
	Images      []string `yaml:"images" json:"images"`
	Owner       Owner    `yaml:"owner" json:"owner"`
}
