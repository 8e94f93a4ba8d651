package schema

// CoreLanguageTable represents the 'core.language' table
type CoreLanguageTable struct {
	Table      string
	ID         string
	Code       string
	Name       string
	NativeName string
	CreatedAt  string
}

// CoreLanguage is the schema definition for core.language
var CoreLanguage = CoreLanguageTable{
	Table:      "core.language",
	ID:         "id",
	Code:       "code",
	Name:       "name",
	NativeName: "nativename",
	CreatedAt:  "createdat",
}
