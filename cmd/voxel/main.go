// Command voxel manages uniform-grid datasets in a SQLite store and applies
// the toolkit's filters to them.
//
// Usage:
//
//	voxel migrate -db data.db up|down|status
//	voxel import  -db data.db -name ct-head grid.json
//	voxel info    -db data.db [-name ct-head]
//	voxel smooth  -db data.db -name ct-head -out ct-head-smooth [flags]
//	voxel extract -db data.db -name ct-head -out ct-head-roi -voi 2,5,0,3,0,0 [flags]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/voxelkit/voxelkit/internal/grid"
	"github.com/voxelkit/voxelkit/internal/monitoring"
	"github.com/voxelkit/voxelkit/internal/store"
	"github.com/voxelkit/voxelkit/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "migrate":
		runMigrate(os.Args[2:])
	case "import":
		runImport(os.Args[2:])
	case "info":
		runInfo(os.Args[2:])
	case "smooth":
		runSmooth(os.Args[2:])
	case "extract":
		runExtract(os.Args[2:])
	case "version":
		fmt.Printf("voxel %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `voxel — uniform-grid dataset tool

Commands:
  migrate   apply or roll back the dataset schema
  import    load a JSON grid file into the store
  info      list stored datasets or describe one
  smooth    Gaussian-smooth a stored dataset
  extract   extract a subvolume of a stored dataset`)
}

func openStore(path string) *store.Store {
	s, err := store.Open(path)
	if err != nil {
		log.Fatalf("opening store %s: %v", path, err)
	}
	return s
}

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	dbPath := fs.String("db", "voxel.db", "path to dataset database")
	fs.Parse(args)

	if fs.NArg() < 1 {
		log.Fatal("usage: voxel migrate -db <path> up|down|status")
	}
	s := openStore(*dbPath)
	defer s.Close()

	switch fs.Arg(0) {
	case "up":
		if err := s.MigrateUp(); err != nil {
			log.Fatalf("migrate up: %v", err)
		}
		log.Println("schema is up to date")
	case "down":
		if err := s.MigrateDown(); err != nil {
			log.Fatalf("migrate down: %v", err)
		}
		log.Println("rolled back one migration")
	case "status":
		ver, dirty, err := s.MigrateVersion()
		if err != nil {
			log.Fatalf("migrate status: %v", err)
		}
		log.Printf("schema version=%d dirty=%v", ver, dirty)
	default:
		log.Fatalf("unknown migrate action: %s", fs.Arg(0))
	}
}

func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dbPath := fs.String("db", "voxel.db", "path to dataset database")
	name := fs.String("name", "", "dataset name (required)")
	fs.Parse(args)

	if *name == "" || fs.NArg() < 1 {
		log.Fatal("usage: voxel import -db <path> -name <name> <grid.json>")
	}

	g, err := readGridFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("reading %s: %v", fs.Arg(0), err)
	}

	s := openStore(*dbPath)
	defer s.Close()
	if err := s.MigrateUp(); err != nil {
		log.Fatalf("preparing schema: %v", err)
	}

	id, err := s.SaveGrid(*name, g)
	if err != nil {
		log.Fatalf("saving dataset: %v", err)
	}
	log.Printf("imported %s as %s (%dx%dx%d points)", *name, id, g.Dims[0], g.Dims[1], g.Dims[2])
}

func runInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	dbPath := fs.String("db", "voxel.db", "path to dataset database")
	name := fs.String("name", "", "describe a single dataset")
	fs.Parse(args)

	s := openStore(*dbPath)
	defer s.Close()

	if *name != "" {
		g, err := s.LoadGridByName(*name)
		if err != nil {
			log.Fatalf("loading %s: %v", *name, err)
		}
		describeGrid(*name, g)
		return
	}

	list, err := s.ListDatasets()
	if err != nil {
		log.Fatalf("listing datasets: %v", err)
	}
	if len(list) == 0 {
		fmt.Println("no datasets stored")
		return
	}
	for _, d := range list {
		fmt.Printf("%-24s %s  dims=%dx%dx%d origin=(%g,%g,%g) spacing=(%g,%g,%g)\n",
			d.Name, d.ID,
			d.Dims[0], d.Dims[1], d.Dims[2],
			d.Origin[0], d.Origin[1], d.Origin[2],
			d.Spacing[0], d.Spacing[1], d.Spacing[2])
	}
}

func describeGrid(name string, g *grid.UniformGrid) {
	fmt.Printf("%s: %dx%dx%d points, %d cells\n", name, g.Dims[0], g.Dims[1], g.Dims[2], g.NumCells())
	fmt.Printf("  origin  (%g, %g, %g)\n", g.Origin[0], g.Origin[1], g.Origin[2])
	fmt.Printf("  spacing (%g, %g, %g)\n", g.Spacing[0], g.Spacing[1], g.Spacing[2])
	fmt.Printf("  point arrays: %v\n", g.PointData.Names())
	fmt.Printf("  cell arrays:  %v\n", g.CellData.Names())
	fmt.Printf("  field arrays: %v\n", g.FieldData.Names())
	if active, loc, ok := g.ActiveScalars(); ok {
		fmt.Printf("  active scalars: %s (%s)\n", active, loc)
	}
}

func runSmooth(args []string) {
	fs := flag.NewFlagSet("smooth", flag.ExitOnError)
	dbPath := fs.String("db", "voxel.db", "path to dataset database")
	name := fs.String("name", "", "source dataset name (required)")
	out := fs.String("out", "", "output dataset name (required)")
	radius := fs.String("radius", "1.5", "radius factor: one value or x,y,z")
	stdDev := fs.String("std", "2", "standard deviation: one value or x,y,z (0 skips an axis)")
	scalars := fs.String("scalars", "", "field to smooth (default: active scalars)")
	preference := fs.String("preference", "points", "search preference: points or cells")
	progress := fs.Bool("progress", false, "log smoothing progress")
	fs.Parse(args)

	if *name == "" || *out == "" {
		log.Fatal("usage: voxel smooth -db <path> -name <src> -out <dst> [flags]")
	}

	opts := grid.SmoothOptions{Scalars: *scalars}
	var err error
	if opts.RadiusFactor, err = parseTriple(*radius); err != nil {
		log.Fatalf("bad -radius: %v", err)
	}
	if opts.StdDev, err = parseTriple(*stdDev); err != nil {
		log.Fatalf("bad -std: %v", err)
	}
	if opts.Preference, err = parsePreference(*preference); err != nil {
		log.Fatalf("bad -preference: %v", err)
	}
	if *progress {
		opts.Progress = func(label string, fraction float64) {
			monitoring.Logf("%s: %3.0f%%", label, fraction*100)
		}
	}

	s := openStore(*dbPath)
	defer s.Close()

	g, err := s.LoadGridByName(*name)
	if err != nil {
		log.Fatalf("loading %s: %v", *name, err)
	}
	smoothed, err := g.Smooth(opts)
	if err != nil {
		log.Fatalf("smoothing %s: %v", *name, err)
	}
	id, err := s.SaveGrid(*out, smoothed)
	if err != nil {
		log.Fatalf("saving %s: %v", *out, err)
	}
	log.Printf("smoothed %s -> %s (%s)", *name, *out, id)
}

func runExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	dbPath := fs.String("db", "voxel.db", "path to dataset database")
	name := fs.String("name", "", "source dataset name (required)")
	out := fs.String("out", "", "output dataset name (required)")
	voiFlag := fs.String("voi", "", "volume of interest: imin,imax,jmin,jmax,kmin,kmax (required)")
	rateFlag := fs.String("rate", "1", "sample rate: one value or x,y,z")
	boundary := fs.Bool("boundary", false, "include VOI boundary when subsampling")
	fs.Parse(args)

	if *name == "" || *out == "" || *voiFlag == "" {
		log.Fatal("usage: voxel extract -db <path> -name <src> -out <dst> -voi <bounds> [flags]")
	}

	voi, err := parseVOI(*voiFlag)
	if err != nil {
		log.Fatalf("bad -voi: %v", err)
	}
	rate, err := parseRate(*rateFlag)
	if err != nil {
		log.Fatalf("bad -rate: %v", err)
	}

	s := openStore(*dbPath)
	defer s.Close()

	g, err := s.LoadGridByName(*name)
	if err != nil {
		log.Fatalf("loading %s: %v", *name, err)
	}
	sub, err := g.ExtractSubset(voi, grid.ExtractOptions{Rate: rate, Boundary: *boundary})
	if err != nil {
		log.Fatalf("extracting from %s: %v", *name, err)
	}
	id, err := s.SaveGrid(*out, sub)
	if err != nil {
		log.Fatalf("saving %s: %v", *out, err)
	}
	log.Printf("extracted %s -> %s (%s, %dx%dx%d points)",
		*name, *out, id, sub.Dims[0], sub.Dims[1], sub.Dims[2])
}
