package models

// CustomerInfo is the contact data collected at the end of an ordering or booking flow.
type CustomerInfo struct {
	Name  string `bson:"name,omitempty" json:"name,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
}

// HasContact reports whether a phone number or an email address is known.
func (c CustomerInfo) HasContact() bool {
	return c.Phone != "" || c.Email != ""
}

// Complete reports whether enough is known to finalize a flow: a name plus one way to reach the customer.
func (c CustomerInfo) Complete() bool {
	return c.Name != "" && c.HasContact()
}

// Merge fills empty fields from other. Known fields are never overwritten.
func (c *CustomerInfo) Merge(other CustomerInfo) {
	if c.Name == "" {
		c.Name = other.Name
	}
	if c.Phone == "" {
		c.Phone = other.Phone
	}
	if c.Email == "" {
		c.Email = other.Email
	}
}
