package record

// newUserSchema returns the [id:int, name:varchar, score:real] schema used
// across the record tests.
func newUserSchema() *Schema {
	schema := NewSchema()
	schema.AddIntField("id")
	schema.AddStringField("name", 20)
	schema.AddRealField("score")
	return schema
}
