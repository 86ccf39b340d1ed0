package main

import "fmt"
import "math/rand"
import "sort"
import "strings"
import "time"

import "github.com/bnclabs/colosseum/colosseum"
import "github.com/spf13/cobra"

var checkopts struct {
	repeat     int
	seed       int64
	trainers   int
	gladiators int
	vtick      time.Duration
	opdump     bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run randomized commands on a registry and validate it",
	RunE:  doCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	f := checkCmd.Flags()
	f.IntVar(&checkopts.repeat, "repeat", 100000,
		"number of commands to generate")
	f.Int64Var(&checkopts.seed, "seed", time.Now().UTC().UnixNano(),
		"seed value for generating commands")
	f.IntVar(&checkopts.trainers, "trainers", 100,
		"generate trainer identifiers between [-1,trainers)")
	f.IntVar(&checkopts.gladiators, "gladiators", 10000,
		"generate gladiator identifiers between [-1,gladiators)")
	f.DurationVar(&checkopts.vtick, "vtick", time.Second,
		"validate registry periodically")
	f.BoolVar(&checkopts.opdump, "opdump", false,
		"dump generated commands")
}

func doCheck(cmd *cobra.Command, args []string) error {
	if checkopts.trainers <= 0 || checkopts.gladiators <= 0 {
		return fmt.Errorf("trainers and gladiators must be positive")
	}
	col, err := newcolosseum("check")
	if err != nil {
		return err
	}
	defer col.Destroy()

	fmt.Printf("Seed: %v\n", checkopts.seed)

	opch := make(chan []string, 10000)
	donech := make(chan struct{})
	go generate(checkopts.repeat, checkopts.seed, opch)
	go validateTick(checkopts.vtick, opch, donech)

	genstats := checkColosseum(col, checkopts.repeat, opch)
	close(donech)
	col.Validate()

	keys := make([]string, 0, len(genstats))
	for key := range genstats {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("%-40v %v\n", key, genstats[key])
	}
	printstats(col)
	return nil
}

func checkColosseum(
	col *colosseum.Colosseum, count int, opch chan []string) map[string]int {

	genstats := map[string]int{}
	for n := 0; n < count; {
		fields := <-opch
		if checkopts.opdump {
			fmt.Printf("cmd %v\n", fields)
		}
		if fields[0] == "Validate" {
			col.Validate()
			genstats["Validate"]++
			continue
		}
		result, err := execute(col, fields)
		if err != nil {
			panic(err)
		}
		genstats[statuskey(result)]++
		n++
	}
	return genstats
}

// statuskey strip query results from an execute() line.
func statuskey(result string) string {
	fields := strings.Fields(result)
	if len(fields) > 2 {
		fields = fields[:2]
	}
	return strings.Join(fields, " ")
}

func generate(repeat int, seed int64, opch chan<- []string) {
	rnd := rand.New(rand.NewSource(seed))
	trainer := func() int { return rnd.Intn(checkopts.trainers+1) - 1 }
	gladiator := func() int { return rnd.Intn(checkopts.gladiators+1) - 1 }
	level := func() int { return rnd.Intn(100) }
	itoa := func(x int) string { return fmt.Sprintf("%v", x) }

	for i := 0; i < repeat; i++ {
		var fields []string
		switch rnd.Intn(100) {
		case 0, 1, 2, 3, 4:
			fields = []string{"AddTrainer", itoa(trainer())}
		case 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19:
			fields = []string{
				"BuyGladiator", itoa(gladiator()), itoa(trainer()), itoa(level()),
			}
		case 20, 21, 22, 23, 24, 25, 26, 27, 28, 29:
			fields = []string{"FreeGladiator", itoa(gladiator())}
		case 30, 31, 32, 33, 34, 35, 36, 37, 38, 39:
			fields = []string{"LevelUp", itoa(gladiator()), itoa(level())}
		case 40, 41, 42, 43, 44, 45, 46, 47, 48, 49:
			fields = []string{
				"UpgradeGladiator", itoa(gladiator()), itoa(gladiator()),
			}
		case 50:
			// keep factors small, levels shall not overflow too often.
			fields = []string{
				"UpdateLevels", itoa(rnd.Intn(10)), itoa(rnd.Intn(3)),
			}
		case 51, 52:
			fields = []string{"GetAllGladiatorsByLevel", itoa(trainer())}
		default:
			fields = []string{"GetTopGladiator", itoa(trainer())}
		}
		opch <- fields
	}
}

func validateTick(tick time.Duration, opch chan<- []string, donech <-chan struct{}) {
	tm := time.NewTicker(tick)
	defer tm.Stop()
	for {
		select {
		case <-tm.C:
		case <-donech:
			return
		}
		select {
		case opch <- []string{"Validate"}:
		case <-donech:
			return
		}
	}
}
