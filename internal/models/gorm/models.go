package gorm

// All lists every model for AutoMigrate.
func All() []interface{} {
	return []interface{}{&Airport{}, &Flight{}, &Currency{}}
}
