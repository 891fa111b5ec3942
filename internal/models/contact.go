package models

// Contact is an emergency contact notified on high-risk entries.
// The phone number is stored in international form.
type Contact struct {
	Id    string
	Name  string
	Phone string
}
