package cocktail

import (
	"os"
	"strings"
	"time"

	"github.com/joyshmitz/phagemix/config"
	"github.com/spf13/cobra"
)

// Flags are the parsed command line arguments shared by the matrix and
// cocktail commands
type Flags struct {
	// in is the path to the phage annotation JSON file
	in string

	// out is the path the JSON report is written to, stdout when empty
	out string

	// hosts are the target host labels, the observed hosts when empty
	hosts []string
}

// parseCmdFlags turns a cobra command's flags into Flags and a Config.
// Settings resolve from the command's own flag set when a flag was passed,
// from the settings file otherwise. Reading the flag set directly keeps
// commands from clobbering each other's viper bindings
func parseCmdFlags(cmd *cobra.Command) (*Flags, *config.Config) {
	in, err := cmd.Flags().GetString("in")
	if err != nil || in == "" {
		stderr.Fatal("no input file. see 'phagemix --help'")
	}

	out, _ := cmd.Flags().GetString("out")

	var hosts []string
	if hostsFlag, err := cmd.Flags().GetString("hosts"); err == nil && hostsFlag != "" {
		for _, host := range strings.Split(hostsFlag, ",") {
			if host = strings.TrimSpace(host); host != "" {
				hosts = append(hosts, host)
			}
		}
	}

	conf := config.New()
	if cmd.Flags().Changed("metric") {
		conf.Metric, _ = cmd.Flags().GetString("metric")
	}
	if cmd.Flags().Changed("threshold") {
		conf.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	}
	if cmd.Flags().Changed("max-size") {
		conf.MaxSize, _ = cmd.Flags().GetInt("max-size")
	}

	if err := conf.Validate(); err != nil {
		stderr.Fatalf("invalid settings: %v", err)
	}

	return &Flags{in: in, out: out, hosts: hosts}, conf
}

// MatrixCmd scores every pair of phages in the input file and writes the
// compatibility matrix
func MatrixCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd)
	start := time.Now()

	phages, err := ReadPhages(flags.in)
	if err != nil {
		stderr.Fatalln(err)
	}

	features := ExtractAll(phages)
	matrix := BuildMatrix(features, Metric(conf.Metric), conf.Threshold)

	if flags.out == "" {
		printMatrix(os.Stdout, matrix, features)
		return
	}

	report := Report{
		Time:      start.Format("2006-01-02 15:04:05"),
		Execution: time.Since(start).Seconds(),
		Metric:    Metric(conf.Metric),
		Threshold: conf.Threshold,
		Phages:    features,
		Matrix:    &matrix,
	}
	if err := writeReport(flags.out, report); err != nil {
		stderr.Fatalln(err)
	}
}

// CocktailCmd builds the matrix and greedily selects a cocktail covering
// the target hosts
func CocktailCmd(cmd *cobra.Command, args []string) {
	flags, conf := parseCmdFlags(cmd)
	start := time.Now()

	phages, err := ReadPhages(flags.in)
	if err != nil {
		stderr.Fatalln(err)
	}

	features := ExtractAll(phages)
	matrix := BuildMatrix(features, Metric(conf.Metric), conf.Threshold)

	hosts := flags.hosts
	if len(hosts) == 0 {
		hosts = conf.TargetHosts
	}
	if len(hosts) == 0 {
		hosts = ObservedHosts(features)
	}

	selection := SelectCocktail(matrix, features, hosts, conf.MaxSize, conf.Threshold)

	if flags.out == "" {
		printSelection(os.Stdout, selection, features)
		return
	}

	report := Report{
		Time:      start.Format("2006-01-02 15:04:05"),
		Execution: time.Since(start).Seconds(),
		Metric:    Metric(conf.Metric),
		Threshold: conf.Threshold,
		Phages:    features,
		Matrix:    &matrix,
		Selection: &selection,
	}
	if err := writeReport(flags.out, report); err != nil {
		stderr.Fatalln(err)
	}
}
