package main

import "bufio"
import "fmt"
import "io"
import "os"
import "strconv"
import "strings"

import "github.com/bnclabs/colosseum/api"
import "github.com/bnclabs/colosseum/colosseum"
import "github.com/spf13/cobra"

var runopts struct {
	dotfile string
	stats   bool
}

var runCmd = &cobra.Command{
	Use:   "run [script...]",
	Short: "Execute registry commands from scripts, or stdin",
	Long: `Every line of a script is a command followed by its integer
arguments, like "BuyGladiator 10 1 5". Lines starting with # are
ignored. For each command its status is printed, followed by the
result for query commands.`,
	RunE: doRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runopts.dotfile, "dotfile", "",
		"dump the level index as graphviz dot file at the end")
	runCmd.Flags().BoolVar(&runopts.stats, "stats", false,
		"print registry statistics at the end")
}

func doRun(cmd *cobra.Command, args []string) error {
	col, err := newcolosseum("run")
	if err != nil {
		return err
	}
	defer col.Destroy()

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if err := runscript(col, os.Stdin, out); err != nil {
			return err
		}
	}
	for _, script := range args {
		fd, err := os.Open(script)
		if err != nil {
			return err
		}
		err = runscript(col, fd, out)
		fd.Close()
		if err != nil {
			return fmt.Errorf("%v: %v", script, err)
		}
	}

	if runopts.dotfile != "" {
		fd, err := os.Create(runopts.dotfile)
		if err != nil {
			return err
		}
		col.Dotdump(fd)
		if err := fd.Close(); err != nil {
			return err
		}
	}
	if runopts.stats {
		printstats(col)
	}
	return nil
}

func runscript(col *colosseum.Colosseum, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result, err := execute(col, strings.Fields(line))
		if err != nil {
			return fmt.Errorf("line %v: %v", lineno, err)
		}
		fmt.Fprintln(out, result)
	}
	return scanner.Err()
}

var arities = map[string]int{
	"AddTrainer":              1,
	"BuyGladiator":            3,
	"FreeGladiator":           1,
	"LevelUp":                 2,
	"UpgradeGladiator":        2,
	"GetTopGladiator":         1,
	"GetAllGladiatorsByLevel": 1,
	"UpdateLevels":            2,
}

// execute a single command on the registry, return the line to be
// reported. Error is returned only for malformed commands.
func execute(col *colosseum.Colosseum, fields []string) (string, error) {
	name := fields[0]
	arity, ok := arities[name]
	if !ok {
		return "", fmt.Errorf("unknown command %q", name)
	} else if len(fields)-1 != arity {
		fmsg := "%v expects %v arguments, got %v"
		return "", fmt.Errorf(fmsg, name, arity, len(fields)-1)
	}
	args := make([]int, 0, arity)
	for _, field := range fields[1:] {
		arg, err := strconv.Atoi(field)
		if err != nil {
			return "", fmt.Errorf("%v: invalid argument %q", name, field)
		}
		args = append(args, arg)
	}

	var err error
	var result interface{}
	switch name {
	case "AddTrainer":
		err = col.AddTrainer(args[0])
	case "BuyGladiator":
		err = col.BuyGladiator(args[0], args[1], args[2])
	case "FreeGladiator":
		err = col.FreeGladiator(args[0])
	case "LevelUp":
		err = col.LevelUp(args[0], args[1])
	case "UpgradeGladiator":
		err = col.UpgradeGladiator(args[0], args[1])
	case "GetTopGladiator":
		result, err = col.GetTopGladiator(args[0])
	case "GetAllGladiatorsByLevel":
		var ids []int
		ids, err = col.GetAllGladiatorsByLevel(args[0])
		result = ids
	case "UpdateLevels":
		err = col.UpdateLevels(args[0], args[1])
	}

	status := api.StatusOf(err)
	if status == api.Success && result != nil {
		return fmt.Sprintf("%v: %v %v", name, status, result), nil
	}
	return fmt.Sprintf("%v: %v", name, status), nil
}
