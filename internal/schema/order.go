package schema

import "fmt"

// SortTablesByDependency sorts tables so that referenced tables come
// before the tables that reference them. Circular dependencies are
// broken with a scoring heuristic.
func SortTablesByDependency(tables []*Table) []*Table {
	var sorted []*Table
	processed := make(map[string]bool)

	for len(sorted) < len(tables) {
		added := false

		// Pass 1: add tables whose dependencies are fully satisfied.
		for _, t := range tables {
			if processed[t.Name] {
				continue
			}

			allDepsProcessed := true
			for _, depName := range t.Dependencies {
				if !processed[depName] {
					allDepsProcessed = false
					break
				}
			}

			if allDepsProcessed {
				sorted = append(sorted, t)
				processed[t.Name] = true
				added = true
			}
		}

		// Pass 2: nothing added means a cycle. Pick the best candidate to
		// break it: fewest unprocessed dependencies, bonus for tables that
		// participate in a mutual reference.
		if !added {
			var bestTable *Table
			bestScore := -999999

			for _, t := range tables {
				if processed[t.Name] {
					continue
				}

				score := 0
				unprocessedDeps := 0
				for _, dep := range t.Dependencies {
					if !processed[dep] {
						unprocessedDeps++
					}
				}
				score -= unprocessedDeps * 100

				isCircular := false
				for _, depName := range t.Dependencies {
					if processed[depName] {
						continue
					}
					for _, cand := range tables {
						if cand.Name != depName {
							continue
						}
						for _, candDep := range cand.Dependencies {
							if candDep == t.Name {
								isCircular = true
								break
							}
						}
						break
					}
					if isCircular {
						break
					}
				}
				if isCircular {
					score += 500
				}

				if score > bestScore {
					bestScore = score
					bestTable = t
				} else if score == bestScore {
					// Deterministic tie-breaker
					if bestTable == nil || t.Name > bestTable.Name {
						bestTable = t
					}
				}
			}

			if bestTable != nil {
				sorted = append(sorted, bestTable)
				processed[bestTable.Name] = true
				fmt.Printf("[order] Breaking circular dependency: %s (Score: %d)\n", bestTable.Name, bestScore)
			} else {
				fmt.Println("[order] Error: remaining tables cannot be ordered")
				break
			}
		}
	}

	return sorted
}
