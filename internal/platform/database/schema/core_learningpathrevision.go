package schema

// CoreLearningPathRevisionTable represents the 'core.learningpathrevision' table
type CoreLearningPathRevisionTable struct {
	Table          string
	LearningPathID string
	Revision       string
	Document       string
	CreatedAt      string
}

// CoreLearningPathRevision is the schema definition for core.learningpathrevision
var CoreLearningPathRevision = CoreLearningPathRevisionTable{
	Table:          "core.learningpathrevision",
	LearningPathID: "learningpathid",
	Revision:       "revision",
	Document:       "document",
	CreatedAt:      "createdat",
}
