package schema

// CatalogTitleTable represents the 'catalog.title' table
type CatalogTitleTable struct {
	Table       string
	ID          string
	Name        string
	Year        string
	Description string
	CategoryID  string
	CreatedAt   string
	UpdatedAt   string
}

// CatalogTitle is the schema definition for catalog.title
var CatalogTitle = CatalogTitleTable{
	Table:       "catalog.title",
	ID:          "id",
	Name:        "name",
	Year:        "year",
	Description: "description",
	CategoryID:  "categoryid",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CatalogTitleTable) Columns() []string {
	return []string{t.ID, t.Name, t.Year, t.Description, t.CategoryID, t.CreatedAt, t.UpdatedAt}
}

// CatalogTitleGenreTable represents the 'catalog.titlegenre' join table
type CatalogTitleGenreTable struct {
	Table   string
	TitleID string
	GenreID string
}

// CatalogTitleGenre is the schema definition for catalog.titlegenre
var CatalogTitleGenre = CatalogTitleGenreTable{
	Table:   "catalog.titlegenre",
	TitleID: "titleid",
	GenreID: "genreid",
}
