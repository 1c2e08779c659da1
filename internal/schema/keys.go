package schema

// CommonColumns returns the column names present on both sides,
// preserving the source's physical order.
func CommonColumns(source, target []string) []string {
	inTarget := make(map[string]bool, len(target))
	for _, c := range target {
		inTarget[c] = true
	}

	var common []string
	for _, c := range source {
		if inTarget[c] {
			common = append(common, c)
		}
	}
	return common
}

// ResolveKey picks the columns that decide row identity for the
// skip-if-exists check. Precedence: explicit per-table override, the
// target's primary key, the source's primary key, then the legacy
// fallback of an "id" column or the first common column. Candidates
// whose columns are not all part of the common set are rejected.
func ResolveKey(override, targetPK, sourcePK, common []string) []string {
	for _, candidate := range [][]string{override, targetPK, sourcePK} {
		if len(candidate) > 0 && subset(candidate, common) {
			return candidate
		}
	}

	for _, c := range common {
		if c == "id" {
			return []string{c}
		}
	}
	if len(common) > 0 {
		return common[:1]
	}
	return nil
}

func subset(cols, of []string) bool {
	in := make(map[string]bool, len(of))
	for _, c := range of {
		in[c] = true
	}
	for _, c := range cols {
		if !in[c] {
			return false
		}
	}
	return true
}
