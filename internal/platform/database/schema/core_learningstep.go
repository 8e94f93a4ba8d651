package schema

// CoreLearningStepTable represents the 'core.learningstep' table
type CoreLearningStepTable struct {
	Table          string
	ID             string
	LearningPathID string
	Revision       string
	SeqNo          string
	Titles         string
	Descriptions   string
	EmbedURLs      string
	ShowTitle      string
	Type           string
	License        string
	Status         string
}

// CoreLearningStep is the schema definition for core.learningstep
var CoreLearningStep = CoreLearningStepTable{
	Table:          "core.learningstep",
	ID:             "id",
	LearningPathID: "learningpathid",
	Revision:       "revision",
	SeqNo:          "seqno",
	Titles:         "titles",
	Descriptions:   "descriptions",
	EmbedURLs:      "embedurls",
	ShowTitle:      "showtitle",
	Type:           "type",
	License:        "license",
	Status:         "status",
}

// Columns returns every column in scan order.
func (t CoreLearningStepTable) Columns() []string {
	return []string{
		t.ID, t.LearningPathID, t.Revision, t.SeqNo, t.Titles, t.Descriptions,
		t.EmbedURLs, t.ShowTitle, t.Type, t.License, t.Status,
	}
}
