// Command validate checks Goldforge level-pack JSON files. Beyond the
// structural validation the server performs at load time, it runs
// playability analysis:
//   - every color placed on a board must have a positive symbol count,
//     otherwise those pieces can never be moved or recolored
//   - the gold supply must cover at least one gilding rule per level
//   - levels that start fully golden are flagged as trivially complete
//
// With no arguments it scans the --dir directory for *.json files;
// explicit file paths can be passed as arguments instead.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/goldforge/goldforge/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Notes holds informational summary lines; otherwise
// it accumulates the problems that were found.
type ValidationResult struct {
	File  string
	Valid bool
	Notes []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// validatePackFile loads and validates one pack file.
func validatePackFile(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
		Notes: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var pack engine.LevelPack
	if err := json.Unmarshal(data, &pack); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if err := engine.ValidateLevelPack(&pack); err != nil {
		result.fail("%v", err)
		return result
	}

	checkPlayability(&pack, &result)

	if result.Valid {
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Name: %s", pack.Name))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Grid: %dx%d", pack.GridSize, pack.GridSize))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Levels: %d", len(pack.Levels)))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Colors: %d, Actions: %d", len(pack.Inventory.Colors), len(pack.Inventory.Actions)))
		result.Notes = append(result.Notes, fmt.Sprintf("✓ Gold supply: %d", goldCount(&pack)))
	}

	return result
}

// checkPlayability verifies the pack can actually be finished: colors on
// the board need spendable source symbols, and the gold pool must cover
// at least one gilding rule per level.
func checkPlayability(pack *engine.LevelPack, result *ValidationResult) {
	counts := map[string]int{}
	for _, sym := range pack.Inventory.Colors {
		counts[sym.ID] = sym.Count
	}

	nonTrivialLevels := 0
	for i, level := range pack.Levels {
		colors := levelColors(level, pack.Legend)
		if len(colors) == 0 {
			result.Notes = append(result.Notes, fmt.Sprintf("Level %d (%s) starts with no non-gold pieces and is trivially complete", i, level.Name))
			continue
		}
		nonTrivialLevels++

		for _, color := range colors {
			if color == engine.GoldID {
				continue
			}
			if counts[color] == 0 {
				result.fail("Level %d (%s): color %q is on the board but its symbol count is 0, those pieces can never change", i, level.Name, color)
			}
		}
	}

	if gold := goldCount(pack); gold < nonTrivialLevels {
		result.fail("Gold supply %d cannot cover %d levels (each level needs at least one gilding rule)", gold, nonTrivialLevels)
	}
}

// levelColors returns the distinct non-empty color ids a level starts with.
func levelColors(level engine.Level, legend map[string]string) []string {
	seen := map[string]bool{}
	var colors []string
	for _, row := range level.Layout {
		for i := range row {
			colorID := legend[string(row[i])]
			if colorID == engine.EmptyCell || colorID == engine.GoldID || seen[colorID] {
				continue
			}
			seen[colorID] = true
			colors = append(colors, colorID)
		}
	}
	return colors
}

func goldCount(pack *engine.LevelPack) int {
	for _, sym := range pack.Inventory.Advanced {
		if sym.ID == engine.GoldID {
			return sym.Count
		}
	}
	return 0
}

// report prints one file's result as a checklist.
func report(result ValidationResult) {
	fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

	if result.Valid {
		fmt.Println("✅ VALID")
		for _, note := range result.Notes {
			fmt.Println("  " + note)
		}
		return
	}

	fmt.Println("❌ INVALID")
	for _, note := range result.Notes {
		if !strings.HasPrefix(note, "✓") {
			fmt.Println("  ❌ " + note)
		}
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "validate",
		Usage: "validate Goldforge level-pack JSON files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Value:   "../configs",
				Usage:   "directory to scan for *.json pack files",
			},
		},
		ArgsUsage: "[pack files...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				var err error
				files, err = filepath.Glob(filepath.Join(cmd.String("dir"), "*.json"))
				if err != nil {
					return fmt.Errorf("finding pack files: %w", err)
				}
			}
			if len(files) == 0 {
				return cli.Exit("no pack files found", 1)
			}

			allValid := true
			for _, file := range files {
				result := validatePackFile(file)
				report(result)
				if !result.Valid {
					allValid = false
				}
			}

			fmt.Printf("\n%s\n", strings.Repeat("=", 40))
			if !allValid {
				return cli.Exit("❌ Some packs have errors", 1)
			}
			fmt.Println("✅ All packs are valid!")
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
