// File: utils/constants.go
package utils

// RoleAdmin is the role claim carried by staff tokens.
const RoleAdmin = "admin"

// AdminSubject is the token subject for the single staff account.
const AdminSubject = "staff"
