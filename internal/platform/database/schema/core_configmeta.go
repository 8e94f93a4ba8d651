package schema

// CoreConfigMetaTable represents the 'core.configmeta' table
type CoreConfigMetaTable struct {
	Table     string
	Key       string
	Value     string
	UpdatedAt string
	UpdatedBy string
}

// CoreConfigMeta is the schema definition for core.configmeta
var CoreConfigMeta = CoreConfigMetaTable{
	Table:     "core.configmeta",
	Key:       "key",
	Value:     "value",
	UpdatedAt: "updatedat",
	UpdatedBy: "updatedby",
}
