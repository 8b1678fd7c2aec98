// Command classmix divides a CSV roster of students into balanced
// classes and prints a validation report for the result.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/classmix"
	flag "github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	numClasses := flag.IntP("classes", "k", 4, "number of classes to partition students into")
	maxIterations := flag.IntP("iterations", "i", 20000, "maximum SA iterations per worker")
	preset := flag.StringP("preset", "p", "default", "parameter preset: default, relaxed, strict, or adaptive")
	configPath := flag.StringP("config", "c", "", "optional JSON or TOML config file overriding --preset, --classes and --iterations")
	outPath := flag.StringP("output", "o", "", "write the assignment CSV to this path (default: stdout)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: classmix [flags] <students.csv>")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()
		return 1
	}

	students, err := readStudentsCSV(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	var params classmix.OptimizationParams
	switch strings.ToLower(*preset) {
	case "default":
		params = classmix.DefaultParams()
	case "relaxed":
		params = classmix.RelaxedParams()
	case "strict":
		params = classmix.StrictParams()
	case "adaptive":
		params = classmix.AdaptiveParams(len(students))
	default:
		fmt.Fprintf(os.Stderr, "error: unknown preset %q\n", *preset)
		return 1
	}

	config := classmix.DivideConfig{
		NumClasses:         *numClasses,
		MaxIterations:      *maxIterations,
		OptimizationParams: params,
	}

	if *configPath != "" {
		loaded, err := loadConfigFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		config = *loaded
	}

	result, err := classmix.DivideStudents(students, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Printf("run %s: cost=%.4f early_stop=%t feasible=%t\n",
		result.RunID, result.Cost, result.EarlyStop, result.Report.Feasible())
	for _, v := range result.Report.Violations {
		fmt.Printf("  violation: %s\n", v)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}

	if err := writeAssignmentCSV(out, result.Classes, students); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	return 0
}

// readStudentsCSV reads a roster with header
// "id,name,gender,score1,score2,...". gender must be "M" or "F".
func readStudentsCSV(path string) ([]classmix.Student, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, classmix.ErrEmptyInput
	}

	students := make([]classmix.Student, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 4 {
			return nil, fmt.Errorf("malformed row: %v", row)
		}

		var gender classmix.Gender
		switch strings.ToUpper(strings.TrimSpace(row[2])) {
		case "M":
			gender = classmix.Male
		case "F":
			gender = classmix.Female
		default:
			return nil, fmt.Errorf("invalid gender %q (want M or F)", row[2])
		}

		scores := make([]float64, len(row)-3)
		total := 0.0
		for i, raw := range row[3:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing score %q: %w", raw, err)
			}
			scores[i] = v
			total += v
		}

		students = append(students, classmix.Student{
			ID:     row[0],
			Name:   row[1],
			Gender: gender,
			Scores: scores,
			Total:  total,
		})
	}

	return students, nil
}

// writeAssignmentCSV writes "student_id,class_id" rows for the final
// assignment.
func writeAssignmentCSV(f *os.File, classes []*classmix.Class, students []classmix.Student) error {
	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"student_id", "class_id"}); err != nil {
		return err
	}
	for _, c := range classes {
		for _, idx := range c.Students {
			if err := w.Write([]string{students[idx].ID, strconv.Itoa(c.ID)}); err != nil {
				return err
			}
		}
	}
	return nil
}

func loadConfigFile(path string) (*classmix.DivideConfig, error) {
	if strings.HasSuffix(strings.ToLower(path), ".toml") {
		return classmix.LoadConfigFromTOMLFile(path)
	}
	return classmix.LoadConfigFromFile(path)
}
