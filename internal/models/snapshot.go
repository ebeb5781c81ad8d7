package models

// Snapshot is a point-in-time read of the business records the alert rules
// evaluate. The engine never mutates anything it finds here.
type Snapshot struct {
	Orders     []Order
	Packages   []Package
	Items      []InventoryItem
	Warranties []Warranty
}
