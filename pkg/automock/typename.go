package automock

import (
	"github.com/getmockd/automock/pkg/graphql"
)

// typenameKey is the key every synthesized object carries while a response
// is being built. The annotator decides whether it survives.
const typenameKey = graphql.TypenameField

// typenameEnabled resolves the tri-state setting: unset means enabled.
func typenameEnabled(setting *bool) bool {
	return setting == nil || *setting
}

// annotateTypename applies the typename policy to a finished response.
// When enabled, objects keep the __typename they were tagged with during
// synthesis; when disabled, every __typename is removed, including ones the
// query selected.
func annotateTypename(v interface{}, enabled bool) {
	if enabled {
		return
	}
	stripTypename(v)
}

func stripTypename(v interface{}) {
	switch t := v.(type) {
	case map[string]interface{}:
		delete(t, typenameKey)
		for _, child := range t {
			stripTypename(child)
		}
	case []interface{}:
		for _, item := range t {
			stripTypename(item)
		}
	}
}
