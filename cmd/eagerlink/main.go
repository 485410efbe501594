package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/eagerlink/eagerlink/binding"
	"github.com/eagerlink/eagerlink/gen"
	"github.com/eagerlink/eagerlink/loader"
	"github.com/eagerlink/eagerlink/manifest"
	"github.com/eagerlink/eagerlink/section"
)

func main() {
	var (
		manifestFile = flag.String("manifest", "", "Path to bindings manifest (HCL)")
		targetName   = flag.String("target", "", "Target family: unix, apple, windows (default: host)")
		outDir       = flag.String("out", ".", "Directory for generated C files")
		sourceName   = flag.String("source", "eagerlink_bindings.c", "Name of the generated C source file")
		list         = flag.Bool("list", false, "Print the construction schedule and exit")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
		verbose      = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *manifestFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: eagerlink -manifest <bindings.hcl> [-target unix|apple|windows] [-out dir]")
		fmt.Fprintln(os.Stderr, "       eagerlink -manifest <bindings.hcl> -list")
		fmt.Fprintln(os.Stderr, "       eagerlink -manifest <bindings.hcl> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		gen.SetLogger(logger)
		loader.SetLogger(logger)
	}

	family, err := resolveFamily(*targetName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*manifestFile, family); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*manifestFile, family, *outDir, *sourceName, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func resolveFamily(name string) (section.Family, error) {
	if name == "" {
		f := section.FamilyForOS(runtime.GOOS)
		if f == section.FamilyUnsupported {
			return f, fmt.Errorf("host platform %s has no constructor sections; pass -target", runtime.GOOS)
		}
		return f, nil
	}
	return section.ParseFamily(name)
}

func run(manifestFile string, family section.Family, outDir, sourceName string, listOnly bool) error {
	ds, err := manifest.Load(manifestFile)
	if err != nil {
		return err
	}

	out, err := gen.Generate(ds, gen.Target{Family: family})
	if err != nil {
		return err
	}

	fmt.Printf("Manifest: %s\n", manifestFile)
	fmt.Printf("Target: %s\n", family)
	fmt.Printf("Bindings: %d\n", len(out.Modules))

	fmt.Printf("\nConstruction schedule:\n")
	for _, m := range out.Modules {
		vis := "private"
		if m.Binding.Visibility == binding.Public {
			vis = "public"
		}
		fmt.Printf("  %-24s %-8s priority %5d  %s\n",
			m.Binding.Name, vis, m.Binding.Priority, m.Ctor.Section)
	}
	if !family.Ordered() {
		fmt.Printf("\nNote: %s does not order constructors by section name.\n", family)
	}

	if listOnly {
		return nil
	}

	sourcePath := filepath.Join(outDir, sourceName)
	if err := os.WriteFile(sourcePath, out.Source, 0o644); err != nil {
		return fmt.Errorf("write source: %w", err)
	}
	fmt.Printf("\nWrote %s\n", sourcePath)

	if len(out.Header) > 0 {
		headerPath := filepath.Join(outDir, out.HeaderName)
		if err := os.WriteFile(headerPath, out.Header, 0o644); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		fmt.Printf("Wrote %s\n", headerPath)
	}

	return nil
}
