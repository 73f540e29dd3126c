package config

// Config is the decoded form of an automock configuration file.
type Config struct {
	// Schema is a single SDL file.
	Schema string `yaml:"schema,omitempty" json:"schema,omitempty"`
	// SchemaFiles are SDL files or glob patterns (** allowed), loaded
	// together after Schema.
	SchemaFiles []string `yaml:"schemaFiles,omitempty" json:"schemaFiles,omitempty"`

	// AddTypename controls __typename on objects. Omitted means true.
	AddTypename *bool `yaml:"addTypename,omitempty" json:"addTypename,omitempty"`
	// ListLength overrides the default number of list items.
	ListLength *int `yaml:"listLength,omitempty" json:"listLength,omitempty"`

	// Mocks maps operation names to partial responses. An entry whose only
	// key is "expr" holding a string is an expression mock.
	Mocks map[string]map[string]interface{} `yaml:"mocks,omitempty" json:"mocks,omitempty"`
	// MockFiles are files or glob patterns holding further `mocks:` maps.
	MockFiles []string `yaml:"mockFiles,omitempty" json:"mockFiles,omitempty"`

	// CopyFieldsFromVariables maps operation names, or "*", to copy rules.
	CopyFieldsFromVariables map[string]map[string]interface{} `yaml:"copyFieldsFromVariables,omitempty" json:"copyFieldsFromVariables,omitempty"`

	// BaseDir is the directory relative paths resolve against. LoadFile
	// sets it to the directory of the file.
	BaseDir string `yaml:"-" json:"-"`
}

// mockFile is the document shape of a file listed in MockFiles.
type mockFile struct {
	Mocks map[string]map[string]interface{} `yaml:"mocks" json:"mocks"`
}

// exprKey marks an expression mock.
const exprKey = "expr"

// exprSource returns the expression of an expression mock entry.
func exprSource(entry map[string]interface{}) (string, bool) {
	if len(entry) != 1 {
		return "", false
	}
	src, ok := entry[exprKey].(string)
	return src, ok
}
