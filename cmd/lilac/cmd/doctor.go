package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"

	"github.com/go-lilac/lilac/pkg/config"
)

const toolkitModule = "github.com/go-lilac/lilac"

func init() {
	RegisterCommand(&Command{
		Name:  "doctor",
		Short: "Validate the project's go.mod and lilac.yaml",
		Long: `Doctor checks that the current project is set up correctly:
the module requires the toolkit, lilac.yaml (if present) parses, the
configured log level is valid, and the pinned engine version is a valid
semantic version.`,
		Usage: "lilac doctor [dir]",
		Run:   runDoctor,
	})
}

func runDoctor(args []string) error {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else {
		root, err := config.FindProjectRoot()
		if err != nil {
			return err
		}
		dir = root
	}

	failures := 0
	check := func(ok bool, what string, detail string) {
		if ok {
			fmt.Printf("  ok    %s\n", what)
			return
		}
		failures++
		fmt.Printf("  FAIL  %s: %s\n", what, detail)
	}

	fmt.Printf("Checking project at %s\n", dir)

	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return fmt.Errorf("failed to read go.mod: %w", err)
	}
	mod, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return fmt.Errorf("failed to parse go.mod: %w", err)
	}
	check(mod.Module != nil && mod.Module.Mod.Path != "", "go.mod module path", "missing module directive")

	requiresToolkit := false
	for _, req := range mod.Require {
		if req.Mod.Path == toolkitModule {
			requiresToolkit = true
			check(semver.IsValid(req.Mod.Version), "toolkit version",
				fmt.Sprintf("%q is not a valid semantic version", req.Mod.Version))
		}
	}
	check(requiresToolkit, "toolkit requirement",
		fmt.Sprintf("go.mod does not require %s", toolkitModule))

	resolved, err := config.Resolve(dir)
	if err != nil {
		check(false, "lilac.yaml", err.Error())
	} else {
		check(true, "lilac.yaml", "")
		if resolved.EngineVersion != "latest" {
			check(semver.IsValid(resolved.EngineVersion), "engine.version",
				fmt.Sprintf("%q is not a valid semantic version", resolved.EngineVersion))
		}
		if resolved.Stylesheet != "" {
			_, err := os.Stat(filepath.Join(dir, resolved.Stylesheet))
			check(err == nil, "app.stylesheet",
				fmt.Sprintf("%s not found", resolved.Stylesheet))
		}
	}

	if failures > 0 {
		return fmt.Errorf("doctor found %d problem(s)", failures)
	}
	fmt.Println("No problems found.")
	return nil
}
