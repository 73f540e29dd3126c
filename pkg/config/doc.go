// Package config loads automock configuration files and turns them into
// provider options.
//
// A configuration file is YAML (.yaml, .yml) or JSON (anything else):
//
//	schema: ./schema.graphql
//	addTypename: true
//	listLength: 2
//	mocks:
//	  OperationA:
//	    queryShape: {returnString: John Doe}
//	  OperationB:
//	    expr: '{"queryShape": {"returnString": "Shape " + variables.shapeId}}'
//	copyFieldsFromVariables:
//	  OperationA: {queryShape: {id: id}}
//	  "*": {user: {id: userId}}
//	mockFiles: ["mocks/**/*.yaml"]
//
// ${VAR} and ${VAR:-default} references are expanded from the environment
// before parsing. The document is checked against an embedded JSON Schema,
// and relative paths resolve against the directory holding the file.
//
// Typical use:
//
//	cfg, err := config.LoadFile("automock.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	schema, opts, err := config.Build(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	provider, err := automock.New(schema, opts...)
package config
