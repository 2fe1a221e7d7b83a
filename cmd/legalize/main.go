// Command legalize runs the detailed-placement legalizer over one or more
// design snapshots, or serves the legalizer's command surface over gRPC.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/mbndr/figlet4go"
	"google.golang.org/grpc"

	"github.com/ironlattice/legalize"
	"github.com/ironlattice/legalize/rpc"
)

func main() {
	var (
		glob        = flag.String("glob", "", "glob pattern of design snapshot files to legalize, e.g. testcases/**/*.json")
		configPath  = flag.String("config", "", "path to a JSON tunables file, read once at startup")
		banner      = flag.Bool("banner", false, "print a FIGlet startup banner")
		copyReport  = flag.Bool("copy-report", false, "copy the rendered report to the system clipboard")
		serve       = flag.String("serve", "", "listen address to serve the legalizer gRPC service on, e.g. :50051")
	)
	flag.Parse()

	if *banner {
		printBanner()
	}

	opts := legalize.DefaultOptions()
	if *configPath != "" {
		cf, err := legalize.LoadConfigFile(*configPath)
		if err != nil {
			log.Fatalf("legalize: %v", err)
		}
		opts = cf.ToOptions()
	}

	if *serve != "" {
		runServer(*serve, opts)
		return
	}

	if *glob == "" {
		log.Fatal("legalize: --glob is required unless --serve is given")
	}

	if err := runBatch(*glob, opts, *copyReport); err != nil {
		log.Fatalf("legalize: %v", err)
	}
}

func printBanner() {
	ascii := figlet4go.NewAsciiRender()
	opts := figlet4go.NewRenderOptions()
	rendered, err := ascii.RenderOpts("legalize", opts)
	if err != nil {
		fmt.Println("legalize")
		return
	}
	fmt.Print(rendered)
}

func runBatch(pattern string, opts legalize.Options, copyReport bool) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("expanding glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("glob %q matched no files", pattern)
	}

	var lastReportText string
	for _, path := range matches {
		snap, err := legalize.ReadSnapshotFile(path)
		if err != nil {
			log.Printf("legalize: skipping %s: %v", path, err)
			continue
		}
		mdb, err := legalize.LoadSnapshot(snap)
		if err != nil {
			log.Printf("legalize: skipping %s: %v", path, err)
			continue
		}

		lz := legalize.New(mdb.Database(), opts, legalize.NewDiagnostics(256))
		report, err := lz.Legalize()
		if err != nil {
			log.Printf("legalize: %s failed: %v", path, err)
			continue
		}

		fmt.Printf("== %s ==\n", path)
		if err := legalize.WriteTable(os.Stdout, report); err != nil {
			log.Printf("legalize: rendering report for %s: %v", path, err)
		}

		if copyReport {
			var sb strings.Builder
			if err := legalize.WriteTable(&sb, report); err == nil {
				lastReportText = fmt.Sprintf("== %s ==\n%s", path, sb.String())
			}
		}
	}

	if copyReport && lastReportText != "" {
		if err := clipboard.WriteAll(lastReportText); err != nil {
			log.Printf("legalize: copying report to clipboard: %v", err)
		}
	}
	return nil
}

func runServer(addr string, opts legalize.Options) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("legalize: listening on %s: %v", addr, err)
	}

	server := grpc.NewServer()
	rpc.RegisterLegalizerServer(server, rpc.NewServer(opts))

	log.Printf("legalize: serving on %s", addr)
	if err := server.Serve(lis); err != nil {
		log.Fatalf("legalize: serve: %v", err)
	}
}
