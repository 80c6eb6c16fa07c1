// Command repkg extracts PKG package archives and converts TEX texture
// containers into standard image and video files.
//
// Usage:
//
//	repkg extract <INPUT>... [options]   extract entries / convert textures
//	repkg info <INPUT>... [--json]       describe inputs without extracting
//
// Exit codes: 0 success, 1 input failure, 2 usage error.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/KibbeWater/repkg"
	"github.com/KibbeWater/repkg/pack"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "extract":
		err = runExtract(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "-h", "-help", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "repkg: unknown command %q\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "repkg: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage:
  repkg extract <INPUT>... [-o DIR] [-f FORMAT] [-q N] [-j N]
                [-overwrite] [-no-convert] [-single-dir]
                [-only EXT] [-ignore EXT] [-v] [-quiet]
  repkg info <INPUT>... [-json]

FORMAT is one of png, jpg, gif, webp, bmp, tiff, tga, or auto (default).
Run "repkg <command> -h" for command-specific options.
`)
}

// extractOptions carries the extract command's flags.
type extractOptions struct {
	outDir    string
	format    string
	quality   int
	jobs      int
	overwrite bool
	noConvert bool
	singleDir bool
	only      string
	ignore    string
	verbose   bool
	quiet     bool
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)

	var o extractOptions
	fs.StringVar(&o.outDir, "o", "output", "output directory")
	fs.StringVar(&o.format, "f", "auto", "target image format (png, jpg, gif, webp, bmp, tiff, tga, auto)")
	fs.IntVar(&o.quality, "q", repkg.DefaultJPEGQuality, "JPEG quality (1-100)")
	fs.IntVar(&o.jobs, "j", runtime.NumCPU(), "number of parallel workers")
	fs.BoolVar(&o.overwrite, "overwrite", false, "overwrite existing output files")
	fs.BoolVar(&o.noConvert, "no-convert", false, "write raw entry bytes without texture conversion")
	fs.BoolVar(&o.singleDir, "single-dir", false, "flatten entry paths into the output directory")
	fs.StringVar(&o.only, "only", "", "extract only entries with this extension")
	fs.StringVar(&o.ignore, "ignore", "", "skip entries with this extension")
	fs.BoolVar(&o.verbose, "v", false, "report every written file")
	fs.BoolVar(&o.quiet, "quiet", false, "suppress non-error output")
	_ = fs.Parse(args)

	inputs := fs.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "repkg extract: no inputs given")
		os.Exit(2)
	}
	if o.format != "auto" && repkg.MIMEType(o.format) == "" {
		fmt.Fprintf(os.Stderr, "repkg extract: unknown format %q\n", o.format)
		os.Exit(2)
	}

	failed := 0
	for _, input := range inputs {
		if err := extractInput(input, &o); err != nil {
			fmt.Fprintf(os.Stderr, "repkg: %s: %v\n", input, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}

	return nil
}

func extractInput(input string, o *extractOptions) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	if p, err := pack.Parse(data); err == nil {
		return extractPackage(input, p, o)
	}

	// Not a package: treat the input as a single texture.
	out, name, err := convertEntry(filepath.Base(input), data, o)
	if err != nil {
		return err
	}

	return writeOutput(filepath.Join(o.outDir, name), out, o)
}

// extractPackage fans the entry list out across a worker pool. Workers
// share the immutable source buffer; each failure is logged and counted
// without aborting the batch.
func extractPackage(input string, p *pack.Package, o *extractOptions) error {
	if !o.quiet {
		fmt.Fprintf(os.Stderr, "%s: %s, %d entries\n", input, p.Magic, len(p.Entries))
	}

	jobs := o.jobs
	if jobs < 1 {
		jobs = 1
	}

	indexes := make(chan int)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)

	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range indexes {
				if err := extractEntry(p, &p.Entries[i], o); err != nil {
					mu.Lock()
					failed++
					mu.Unlock()
					fmt.Fprintf(os.Stderr, "repkg: %s: %s: %v\n", input, p.Entries[i].Path, err)
				}
			}
		}()
	}

	for i := range p.Entries {
		if skipEntry(&p.Entries[i], o) {
			continue
		}
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	if failed > 0 {
		return fmt.Errorf("%d entries failed", failed)
	}

	return nil
}

func skipEntry(e *pack.Entry, o *extractOptions) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(e.Path)), ".")
	if o.only != "" && ext != strings.ToLower(o.only) {
		return true
	}
	if o.ignore != "" && ext == strings.ToLower(o.ignore) {
		return true
	}

	return false
}

func extractEntry(p *pack.Package, e *pack.Entry, o *extractOptions) error {
	name := e.Path
	if o.singleDir {
		name = filepath.Base(e.Path)
	}

	data := p.Materialize(e)

	if e.Kind == pack.KindTexture && !o.noConvert {
		out, outName, err := convertEntry(name, data, o)
		if err != nil {
			return err
		}

		return writeOutput(filepath.Join(o.outDir, outName), out, o)
	}

	return writeOutput(filepath.Join(o.outDir, name), data, o)
}

// convertEntry converts one texture payload and returns the output bytes
// with the entry name rewritten for the produced format.
func convertEntry(name string, data []byte, o *extractOptions) ([]byte, string, error) {
	out, mime, err := repkg.ConvertWithOptions(data, o.format, &repkg.ConvertOptions{Quality: o.quality})
	if err != nil {
		return nil, "", err
	}

	ext := extForMIME(mime)
	base := strings.TrimSuffix(name, filepath.Ext(name))

	return out, base + ext, nil
}

func extForMIME(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	case "image/x-tga":
		return ".tga"
	case "video/mp4":
		return ".mp4"
	default:
		return ".bin"
	}
}

func writeOutput(path string, data []byte, o *extractOptions) error {
	if !o.overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s exists (use -overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}

	if o.verbose && !o.quiet {
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", path, len(data))
	}

	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "emit machine-readable JSON")
	_ = fs.Parse(args)

	inputs := fs.Args()
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "repkg info: no inputs given")
		os.Exit(2)
	}

	failed := 0
	for _, input := range inputs {
		data, err := os.ReadFile(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "repkg: %s: %v\n", input, err)
			failed++

			continue
		}

		fk := repkg.Describe(data)
		if *asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(fk); err != nil {
				return err
			}

			continue
		}

		printFileKind(input, fk)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
	}

	return nil
}

func printFileKind(input string, fk repkg.FileKind) {
	switch fk.Kind {
	case repkg.KindPackage:
		fmt.Printf("%s: package %s, %d entries\n", input, fk.Package.Magic, fk.Package.EntryCount)
		for _, e := range fk.Package.Entries {
			fmt.Printf("  %-9s %8d  %s\n", e.Kind, e.Size, e.Path)
		}
	case repkg.KindTexture:
		t := fk.Texture
		traits := make([]string, 0, 2)
		if t.IsAnimated {
			traits = append(traits, "animated")
		}
		if t.IsVideo {
			traits = append(traits, "video")
		}

		extra := ""
		if len(traits) > 0 {
			extra = " (" + strings.Join(traits, ", ") + ")"
		}

		fmt.Printf("%s: texture %dx%d (stored %dx%d) %s, %d mipmaps%s\n",
			input, t.Width, t.Height, t.TextureWidth, t.TextureHeight, t.Format, t.MipmapCount, extra)
	default:
		fmt.Printf("%s: unknown\n", input)
	}
}
