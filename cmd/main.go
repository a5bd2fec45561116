package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/edp1096/toy-spme/pkg/analysis"
	"github.com/edp1096/toy-spme/pkg/cell"
	"github.com/edp1096/toy-spme/pkg/config"
	"github.com/edp1096/toy-spme/pkg/report"
	"github.com/edp1096/toy-spme/pkg/util"
	"github.com/edp1096/toy-spme/pkg/waveform"
)

var (
	flagCurrent  = flag.Float64("current", 1, "cycle current in A (positive charges first)")
	flagHalf     = flag.Float64("half", 1200, "cycle half period in s")
	flagStep     = flag.Float64("dt", 0.1, "timestep in s")
	flagSource   = flag.String("source", "", "current source, e.g. \"PULSE(0 1 0 0 0 600 1200)\"")
	flagTable    = flag.String("table", "", "two-column (time, current) profile file")
	flagMethod   = util.FTCSMethod
	flagParallel = flag.Bool("parallel", false, "step the three fields concurrently")
	flagEvery    = flag.Int("every", 600, "print every n-th step")
	flagOut      = flag.String("out", "", "write results CSV")
	flagHistory  = flag.String("history", "", "record electrolyte history and write it as CSV")
	flagPlot     = flag.String("plot", "", "save voltage plot (png, svg, pdf)")
	flagHTML     = flag.String("html", "", "write interactive HTML report")
	flagVideo    = flag.String("video", "", "record electrolyte history and write it as MJPEG AVI")
	flagVerbose  = flag.Bool("v", false, "print every stage")
)

func init() {
	flag.TextVar(&flagMethod, "method", util.FTCSMethod, "integration method: ftcs or be")
}

func getKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printOpenCircuit(results map[string][]float64) {
	fmt.Println("\nOpen circuit:")
	for _, name := range getKeys(results) {
		values := results[name]
		switch {
		case strings.HasPrefix(name, "V(") || strings.HasPrefix(name, "U("):
			fmt.Printf("%s = %s\n", name, util.FormatValueFactor(values[0], "V"))
		case strings.HasPrefix(name, "X("):
			fmt.Printf("%s = %s\n", name, util.FormatFraction(values[0]))
		}
	}
}

func printResults(results map[string][]float64, every int) {
	times := results[analysis.KeyTime]
	fmt.Printf("\nTransient Analysis Results (%d time points):\n", len(times))
	fmt.Println("Time         Current     Voltage     Overpotentials")
	fmt.Println("--------------------------------------------------------------")

	if every < 1 {
		every = 1
	}
	current := results[analysis.KeyCurrent]
	voltage := results[analysis.KeyVoltage]
	etaNames := []string{analysis.KeyEtaNegative, analysis.KeyEtaPositive, analysis.KeyEtaElectrolyte}

	for i, t := range times {
		if i%every != 0 && i != len(times)-1 {
			continue
		}
		fmt.Printf("%-11s  %-10s  %-10s  ", util.FormatElapsed(t),
			util.FormatValueFactor(current[i], "A"), util.FormatValueFactor(voltage[i], "V"))
		for _, name := range etaNames {
			fmt.Printf("%s=%s  ", name, util.FormatValueFactor(results[name][i], "V"))
		}
		fmt.Println()
	}
}

// loadDeck reads the optional cell file and applies explicitly set flags.
func loadDeck() (*config.Deck, error) {
	var (
		deck *config.Deck
		err  error
	)
	if flag.NArg() == 1 {
		deck, err = config.Load(flag.Arg(0))
	} else {
		deck, err = config.Parse("")
	}
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["method"] {
		deck.Cell.Method = flagMethod
	}
	if set["parallel"] {
		deck.Cell.Parallel = *flagParallel
	}
	if *flagHistory != "" || *flagVideo != "" {
		deck.Cell.RecordHistory = true
	}
	if set["dt"] {
		deck.Profile.TStep = *flagStep
	}

	switch {
	case *flagTable != "":
		deck.Profile.Table, deck.Profile.Source = *flagTable, nil
	case *flagSource != "":
		src, err := config.ParseSource(*flagSource)
		if err != nil {
			return nil, err
		}
		deck.Profile.Source, deck.Profile.Table = src, ""
	case set["current"] || set["half"]:
		half := *flagHalf
		deck.Profile.Source = waveform.Cycle{Amplitude: *flagCurrent, HalfPeriod: half}
		deck.Profile.TStop = 2 * half
		deck.Profile.Table = ""
	}
	return deck, nil
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeOutputs(c *cell.Cell, results map[string][]float64) {
	times := results[analysis.KeyTime]

	if *flagOut != "" {
		err := writeFile(*flagOut, func(f *os.File) error { return report.WriteCSV(f, results) })
		if err != nil {
			log.Fatalf("Error writing results: %v", err)
		}
	}
	if *flagHistory != "" {
		err := writeFile(*flagHistory, func(f *os.File) error { return report.WriteHistoryCSV(f, times, c.History()) })
		if err != nil {
			log.Fatalf("Error writing history: %v", err)
		}
	}
	if *flagPlot != "" {
		if err := report.SaveVoltagePlot(*flagPlot, results); err != nil {
			log.Fatalf("Error saving plot: %v", err)
		}
	}
	if *flagHTML != "" {
		err := writeFile(*flagHTML, func(f *os.File) error { return report.RenderHTML(f, c.GetName(), results) })
		if err != nil {
			log.Fatalf("Error writing HTML report: %v", err)
		}
	}
	if *flagVideo != "" {
		err := report.WriteHistoryVideo(*flagVideo, times, c.History(), c.Electrolyte.Thickness, report.DefaultVideoOptions())
		if err != nil {
			log.Fatalf("Error writing video: %v", err)
		}
	}
}

func proc(verbose bool) {
	// 1. Read cell description
	deck, err := loadDeck()
	if err != nil {
		log.Fatalf("Error reading cell description: %v", err)
	}
	if verbose {
		fmt.Printf("\n[1] Cell %q, method %s, parallel %v\n", deck.Cell.Name, deck.Cell.Method, deck.Cell.Parallel)
		fmt.Printf("Negative: %+v\n", deck.Cell.Negative)
		fmt.Printf("Positive: %+v\n", deck.Cell.Positive)
		fmt.Printf("Electrolyte: %+v\n", deck.Cell.Electrolyte)
	}

	// 2. Sample the current profile
	time, current, err := deck.Profile.Series()
	if err != nil {
		log.Fatalf("Error building current profile: %v", err)
	}
	if verbose {
		fmt.Printf("\n[2] Current profile: %d samples over %s\n", len(time), util.FormatElapsed(time[len(time)-1]))
	}

	// 3. Build the cell
	c, err := cell.New(deck.Cell)
	if err != nil {
		log.Fatalf("Error creating cell: %v", err)
	}
	defer c.Destroy()

	op := analysis.NewOP()
	if err := op.Setup(c); err != nil {
		log.Fatalf("Analysis setup failed: %v", err)
	}
	if err := op.Execute(); err != nil {
		log.Fatalf("Analysis execution failed: %v", err)
	}
	printOpenCircuit(op.GetResults())

	// 4. Run transient
	tran := analysis.NewTransient(time, current)
	if verbose {
		fmt.Println("\n[4] Executing transient analysis")
		total := len(time)
		tran.SetProgress(func(out cell.StepOutput) {
			if (out.Index+1)%(total/10+1) == 0 {
				fmt.Printf("  %3.0f%%  t=%s  V=%s\n", 100*float64(out.Index+1)/float64(total),
					util.FormatElapsed(out.Time), util.FormatValueFactor(out.Voltage, "V"))
			}
		})
	}
	if err := tran.Setup(c); err != nil {
		log.Fatalf("Analysis setup failed: %v", err)
	}
	if err := tran.Execute(); err != nil {
		log.Fatalf("Analysis execution failed: %v", err)
	}

	// 5. Print and store results
	results := tran.GetResults()
	printResults(results, *flagEvery)
	writeOutputs(c, results)
}

func main() {
	flag.Parse()
	if flag.NArg() > 1 {
		log.Fatal("Usage: spme [flags] [cell_file]")
	}

	proc(*flagVerbose)
}
