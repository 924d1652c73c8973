package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/semhl/internal/adapters/libclang"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that libclang can be found and loaded",
	Long: "Looks for the libclang shared library in library_paths, $" + libclang.EnvLibraryPath +
		" and the usual LLVM locations, loads it and creates and disposes one index.",
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println(bold("⚡ semhl doctor"))

	version := libclang.Version()
	if libclang.Available {
		fmt.Printf("  Frontend:   %s compiled in (%s)\n", mark(true), version)
	} else {
		fmt.Printf("  Frontend:   %s not compiled in (build with CGO_ENABLED=1 -tags libclang)\n", mark(false))
	}

	paths := libclang.SearchPaths(config.LibraryPaths)
	res, err := libclang.Probe(paths)
	if err != nil {
		fmt.Printf("  Library:    %s %v\n", mark(false), err)
		fmt.Printf("  Searched:   %d locations (set $%s to add one)\n", len(paths), libclang.EnvLibraryPath)
		return err
	}
	fmt.Printf("  Library:    %s %s\n", mark(true), res.Path)
	fmt.Printf("  Index:      %s create/dispose round trip\n", mark(res.IndexRoundTrip))
	fmt.Printf("  Flags:      %v\n", config.Flags)
	return nil
}
