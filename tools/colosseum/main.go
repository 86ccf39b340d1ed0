package main

import "fmt"
import "os"

import "github.com/bnclabs/colosseum/colosseum"
import "github.com/bnclabs/colosseum/llrb"
import "github.com/bnclabs/golog"
import s "github.com/bnclabs/gosettings"
import humanize "github.com/dustin/go-humanize"
import "github.com/spf13/cobra"

var options struct {
	capacity string
	log      string
	logfile  string
	validate bool
}

var rootCmd = &cobra.Command{
	Use:   "colosseum",
	Short: "Drive a colosseum registry of trainers and gladiators",
	Long: `colosseum executes registry commands from scripts, or from a
randomized generator, and reports the status of every command.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setuplog()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&options.capacity, "capacity", "",
		"arena capacity for the registry, like 64MB, default free RAM")
	flags.StringVar(&options.log, "log", "",
		"log level, one of ignore,fatal,error,warn,info,debug")
	flags.StringVar(&options.logfile, "logfile", "",
		"log to file instead of console")
	flags.BoolVar(&options.validate, "validate", false,
		"validate registry after every mutation")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setuplog() error {
	if options.log == "" {
		return nil
	}
	setts := map[string]interface{}{
		"log.level": options.log,
		"log.file":  options.logfile,
	}
	log.SetLogger(nil, setts)
	llrb.LogComponents("self")
	colosseum.LogComponents("self")
	return nil
}

func newcolosseum(name string) (*colosseum.Colosseum, error) {
	setts := s.Settings{"validate": options.validate}
	if options.capacity != "" {
		capacity, err := humanize.ParseBytes(options.capacity)
		if err != nil {
			return nil, fmt.Errorf("invalid capacity %q: %v", options.capacity, err)
		} else if capacity == 0 {
			return nil, fmt.Errorf("invalid capacity %q", options.capacity)
		}
		setts["arena.capacity"] = int64(capacity)
	}
	return colosseum.NewColosseum(name, setts), nil
}

func printstats(col *colosseum.Colosseum) {
	stats := col.Stats()
	arena := stats["arena"].(map[string]interface{})
	fmt.Printf("gladiators: %v, trainers: %v\n", col.Count(), stats["trainers.count"])
	fmt.Printf("arena: capacity %v allocated %v\n",
		humanize.Bytes(uint64(arena["capacity"].(int64))),
		humanize.Bytes(uint64(arena["allocated"].(int64))))
	fmt.Printf("ops: success %v, failure %v, invalid %v, oom %v\n",
		stats["n_success"], stats["n_failures"], stats["n_invalids"],
		stats["n_ooms"])
}
