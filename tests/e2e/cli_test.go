package e2e_test

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/getmockd/automock/pkg/cli"
)

// TestMain registers the automock command so scripts run it in-process.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"automock": func() int {
			return cli.Run(os.Args[1:], os.Stdout, os.Stderr)
		},
	}))
}

func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("AUTOMOCK_LIST_LENGTH", "3")
			return nil
		},
	})
}
