// Command analyze prints human-readable heuristics about the level
// packs in the configs directory. For each pack it summarizes grid
// dimensions and inventory depth, estimates the cheapest rule sequence
// per level (merge every color into one, then gild), and warns when the
// symbol supply cannot cover that lower bound across the whole pack.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PackFile is a light struct for reading pack files used by analysis.
type PackFile struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	GridSize    int               `json:"grid_size"`
	Legend      map[string]string `json:"legend"`
	Levels      []struct {
		Name   string   `json:"name"`
		Layout []string `json:"layout"`
	} `json:"levels"`
	Inventory struct {
		Colors []struct {
			ID    string `json:"id"`
			Count int    `json:"count"`
		} `json:"colors"`
		Actions []struct {
			ID    string `json:"id"`
			Count int    `json:"count"`
		} `json:"actions"`
		Advanced []struct {
			ID    string `json:"id"`
			Count int    `json:"count"`
		} `json:"advanced"`
	} `json:"inventory"`
}

// LevelStats summarizes the cost analysis of one level.
type LevelStats struct {
	Name     string
	Pieces   int
	Colors   int
	MinRules int
}

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No pack files found in %s\n", dir)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzePack(file)
	}
}

func analyzePack(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var pack PackFile
	if err := json.Unmarshal(data, &pack); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", pack.Name)
	fmt.Printf("Grid Size: %d x %d\n", pack.GridSize, pack.GridSize)
	fmt.Printf("Levels: %d\n", len(pack.Levels))

	stats := make([]LevelStats, 0, len(pack.Levels))
	for _, level := range pack.Levels {
		stats = append(stats, analyzeLevel(level.Name, level.Layout, pack.Legend))
	}

	totalRules := 0
	goldNeeded := 0
	for _, s := range stats {
		fmt.Printf("  %-20s pieces=%d colors=%d min-rules=%d\n", s.Name, s.Pieces, s.Colors, s.MinRules)
		totalRules += s.MinRules
		if s.MinRules > 0 {
			goldNeeded++
		}
	}

	goldSupply := 0
	for _, sym := range pack.Inventory.Advanced {
		if sym.ID == "gold" {
			goldSupply = sym.Count
		}
	}

	colorSupply := 0
	for _, sym := range pack.Inventory.Colors {
		colorSupply += sym.Count
	}

	actionSupply := 0
	for _, sym := range pack.Inventory.Actions {
		actionSupply += sym.Count
	}

	// Each rule spends one action. Merges spend two color symbols, gilds
	// spend one color and one gold.
	mergeRules := totalRules - goldNeeded
	colorNeeded := 2*mergeRules + goldNeeded

	fmt.Printf("Cheapest full run: %d rules (%d merges + %d gilds)\n", totalRules, mergeRules, goldNeeded)
	fmt.Printf("Supply: colors=%d actions=%d gold=%d\n", colorSupply, actionSupply, goldSupply)

	warned := false
	if goldSupply < goldNeeded {
		fmt.Printf("⚠️  CRITICAL: gold supply %d cannot cover %d levels\n", goldSupply, goldNeeded)
		warned = true
	}
	if actionSupply < totalRules {
		fmt.Printf("⚠️  WARNING: action supply %d is below the cheapest run (%d rules)\n", actionSupply, totalRules)
		warned = true
	}
	if colorSupply < colorNeeded {
		fmt.Printf("⚠️  WARNING: color supply %d is below the cheapest run's estimate (%d)\n", colorSupply, colorNeeded)
		warned = true
	}

	if !warned {
		slack := goldSupply - goldNeeded
		fmt.Printf("✅ Budget is feasible with %d gold to spare\n", slack)
	}
}

// analyzeLevel computes the merge-then-gild lower bound for one level:
// with k distinct non-gold colors, k-1 merges plus one gild.
func analyzeLevel(name string, layout []string, legend map[string]string) LevelStats {
	stats := LevelStats{Name: name}

	seen := map[string]bool{}
	for _, row := range layout {
		for i := range row {
			colorID := legend[string(row[i])]
			if colorID == "" || colorID == "gold" {
				continue
			}
			stats.Pieces++
			if !seen[colorID] {
				seen[colorID] = true
				stats.Colors++
			}
		}
	}

	if stats.Colors > 0 {
		stats.MinRules = stats.Colors // k-1 merges + 1 gild
	}
	return stats
}
