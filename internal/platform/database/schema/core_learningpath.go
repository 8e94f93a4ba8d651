package schema

// CoreLearningPathTable represents the 'core.learningpath' table
type CoreLearningPathTable struct {
	Table              string
	ID                 string
	Revision           string
	IsBasedOn          string
	Titles             string
	Descriptions       string
	Introductions      string
	Tags               string
	CoverPhotoURL      string
	Duration           string
	Status             string
	VerificationStatus string
	Copyright          string
	SupportedLanguages string
	OwnerID            string
	Message            string
	LastUpdated        string
}

// CoreLearningPath is the schema definition for core.learningpath
var CoreLearningPath = CoreLearningPathTable{
	Table:              "core.learningpath",
	ID:                 "id",
	Revision:           "revision",
	IsBasedOn:          "isbasedon",
	Titles:             "titles",
	Descriptions:       "descriptions",
	Introductions:      "introductions",
	Tags:               "tags",
	CoverPhotoURL:      "coverphotourl",
	Duration:           "duration",
	Status:             "status",
	VerificationStatus: "verificationstatus",
	Copyright:          "copyright",
	SupportedLanguages: "supportedlanguages",
	OwnerID:            "ownerid",
	Message:            "message",
	LastUpdated:        "lastupdated",
}

// Columns returns every column in scan order.
func (t CoreLearningPathTable) Columns() []string {
	return []string{
		t.ID, t.Revision, t.IsBasedOn, t.Titles, t.Descriptions, t.Introductions, t.Tags,
		t.CoverPhotoURL, t.Duration, t.Status, t.VerificationStatus, t.Copyright,
		t.SupportedLanguages, t.OwnerID, t.Message, t.LastUpdated,
	}
}
