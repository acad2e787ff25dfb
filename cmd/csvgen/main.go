// csvgen generates a synthetic main + time-tracking CSV export pair for
// demos and manual testing. The "linked" scenario fills the Epic Link
// column on every child; "sparse" leaves most of them blank to force the
// balanced-distribution fallback.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

var statuses = []string{"To Do", "In Progress", "Code Review", "Testing", "Done"}

func main() {
	scenario := flag.String("scenario", "linked", "Scenario to generate: linked, sparse")
	count := flag.Int("count", 60, "Number of child issues to generate")
	epics := flag.Int("epics", 6, "Number of epics to generate")
	seed := flag.Int64("seed", 42, "Random seed")
	outDir := flag.String("out", ".", "Output directory")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	mainRows := [][]string{{"Issue key", "Issue id", "Issue Type", "Status", "Summary", "Sprint", "Custom field (Story Points)", "Custom field (Epic Link)", "Assignee"}}
	timeRows := [][]string{{"Issue key", "To Do", "In Progress", "Code Review", "Testing"}}

	epicKeys := make([]string, *epics)
	for i := range epicKeys {
		key := fmt.Sprintf("DEMO-%d", i+1)
		epicKeys[i] = key
		status := statuses[rng.Intn(len(statuses))]
		sprint := fmt.Sprintf("Sprint %d", i/2+1)
		mainRows = append(mainRows, []string{
			key, fmt.Sprintf("%d", 1000+i), "Epic", status,
			fmt.Sprintf("Epic %d", i+1), sprint,
			fmt.Sprintf("%d", rng.Intn(8)+1), "", "alice",
		})
		timeRows = append(timeRows, []string{
			key,
			fmt.Sprintf("%dd", rng.Intn(10)),
			fmt.Sprintf("%dw %dd", rng.Intn(3), rng.Intn(7)),
			fmt.Sprintf("%dd %dh", rng.Intn(5), rng.Intn(24)),
			fmt.Sprintf("%dd", rng.Intn(6)),
		})
	}

	for i := 0; i < *count; i++ {
		key := fmt.Sprintf("DEMO-%d", 100+i)
		epicLink := epicKeys[rng.Intn(len(epicKeys))]
		if *scenario == "sparse" && rng.Float64() > 0.05 {
			epicLink = ""
		}
		status := statuses[rng.Intn(len(statuses))]
		mainRows = append(mainRows, []string{
			key, fmt.Sprintf("%d", 2000+i), "Task", status,
			fmt.Sprintf("Task %d", i+1), "",
			fmt.Sprintf("%d", rng.Intn(5)+1), epicLink, "bob",
		})
	}

	if err := writeCSV(filepath.Join(*outDir, "main.csv"), mainRows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write main.csv: %v\n", err)
		os.Exit(1)
	}
	if err := writeCSV(filepath.Join(*outDir, "time.csv"), timeRows); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write time.csv: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generated %s scenario: %d epics, %d children in %s\n", *scenario, *epics, *count, *outDir)
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
