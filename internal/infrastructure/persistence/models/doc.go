// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: id and audit columns shared by every table
//   - identity.go: users
//   - rental.go: rooms and meter readings
//   - billing.go: price configurations and bills
//
// All lists every model for AutoMigrate.
package models

// All returns every model in dependency order
func All() []any {
	return []any{
		&UserModel{},
		&RoomModel{},
		&MeterReadingModel{},
		&PriceConfigModel{},
		&BillModel{},
	}
}
