package schema

// CatalogReferenceTable represents a flat name/slug lookup table.
// Categories and genres share the same shape.
type CatalogReferenceTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// CatalogCategory is the schema definition for catalog.category
var CatalogCategory = CatalogReferenceTable{
	Table: "catalog.category",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

// CatalogGenre is the schema definition for catalog.genre
var CatalogGenre = CatalogReferenceTable{
	Table: "catalog.genre",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}

func (t CatalogReferenceTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug}
}
