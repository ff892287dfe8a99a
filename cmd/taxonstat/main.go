// Command taxonstat is a thin CLI over the taxonomy engine: it discovers
// a dump file trio, builds an Engine, and runs one query subcommand. All
// domain logic lives in the core packages; this file is wiring only.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Thomas1664/go-taxonomy/config"
	"github.com/Thomas1664/go-taxonomy/logging"
	"github.com/Thomas1664/go-taxonomy/taxonomy"
	"github.com/Thomas1664/go-taxonomy/wmlca"
	"github.com/spf13/cobra"
)

var (
	dumpPrefix string
	configPath string
	logLevel   string
)

func main() {
	root := &cobra.Command{
		Use:   "taxonstat",
		Short: "Query an NCBI-style taxonomy dump",
	}
	root.PersistentFlags().StringVar(&dumpPrefix, "dump", "", "dump file prefix; bare nodes/names/merged.dmp in the prefix's directory are the fallback (required)")
	root.PersistentFlags().StringVar(&configPath, "config", "", "optional rank/vote YAML config")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")
	_ = root.MarkPersistentFlagRequired("dump")

	root.AddCommand(lcaCmd(), lineageCmd(), cladesCmd(), wmlcaCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadEngine(cmd *cobra.Command) *taxonomy.Engine {
	exit := logging.Init(logLevel)
	defer exit()
	log := logging.New("taxonstat")

	cfg := config.Default()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			log.Errorf("taxonstat: opening config: %v", err)
			os.Exit(1)
		}
		defer f.Close()
		loaded, err := config.Load(f)
		if err != nil {
			log.Errorf("taxonstat: loading config: %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	engine, err := taxonomy.Load(cmd.Context(), dumpPrefix, cfg, log, taxonomy.OSExit(log))
	if err != nil {
		// taxonomy.OSExit already terminated the process; this is
		// unreachable in practice, kept so the compiler sees every path
		// return a usable engine.
		os.Exit(1)
	}
	return engine
}

func lcaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lca <id> <id> [id...]",
		Short: "Print the lowest common ancestor of two or more taxon ids",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			engine := loadEngine(cmd)
			rec := engine.LCAAll(parseIDs(args))
			if rec == nil {
				fmt.Println("no known taxon among the given ids")
				return
			}
			fmt.Printf("%d\t%s\n", rec.ExternalID, rec.Name)
		},
	}
}

func lineageCmd() *cobra.Command {
	var asNames bool
	cmd := &cobra.Command{
		Use:   "lineage <id>",
		Short: "Print the root-to-node lineage of a taxon",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			engine := loadEngine(cmd)
			s, err := engine.LineageString(parseID(args[0]), asNames)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Println(s)
		},
	}
	cmd.Flags().BoolVar(&asNames, "names", false, "render lineage as rank-coded names instead of ids")
	return cmd
}

func cladesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clades <id>=<count> [id=count...]",
		Short: "Fold per-taxon counts into per-clade subtree sums",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			engine := loadEngine(cmd)
			result := engine.CladeCounts(parseCounts(args))
			for id, entry := range result {
				fmt.Printf("%d\tself=%d\tclade=%d\n", id, entry.SelfCount, entry.CladeCount)
			}
		},
	}
}

func wmlcaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wmlca <id>[:evidence] [id[:evidence]...]",
		Short: "Select the weighted-majority LCA over a set of taxon hits",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			engine := loadEngine(cmd)
			result, err := engine.WeightedMajorityLCA(parseHits(args))
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Printf("%d\t%.2f%%\t%d/%d agreeing\n", result.Selected, result.SelectedPercent*100, result.Agreeing, result.Assigned)
		},
	}
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "taxonstat: invalid taxon id %q\n", s)
		os.Exit(1)
	}
	return id
}

func parseIDs(args []string) []int64 {
	ids := make([]int64, len(args))
	for i, a := range args {
		ids[i] = parseID(a)
	}
	return ids
}

func parseCounts(args []string) map[int64]uint64 {
	counts := make(map[int64]uint64, len(args))
	for _, a := range args {
		parts := strings.SplitN(a, "=", 2)
		if len(parts) != 2 {
			fmt.Fprintf(os.Stderr, "taxonstat: expected id=count, got %q\n", a)
			os.Exit(1)
		}
		count, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "taxonstat: invalid count %q\n", parts[1])
			os.Exit(1)
		}
		counts[parseID(parts[0])] += count
	}
	return counts
}

func parseHits(args []string) []wmlca.Hit {
	hits := make([]wmlca.Hit, len(args))
	for i, a := range args {
		parts := strings.SplitN(a, ":", 2)
		evidence := 1.0
		if len(parts) == 2 {
			v, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "taxonstat: invalid evidence %q\n", parts[1])
				os.Exit(1)
			}
			evidence = v
		}
		hits[i] = wmlca.Hit{TaxonID: parseID(parts[0]), Evidence: evidence}
	}
	return hits
}
