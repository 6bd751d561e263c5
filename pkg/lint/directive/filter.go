package directive

// Suppressible is anything a disable directive can hide.
type Suppressible interface {
	RuleName() string
	Line() int
}

// Unused is a disable directive, or one rule name in it, that suppressed nothing.
type Unused struct {
	Directive Directive
	Rule      string // empty when the directive targets all rules
}

// Filtered is the outcome of applying a Set to a list of offenses.
type Filtered[T Suppressible] struct {
	Kept       []T
	Suppressed []T
	Unused     []Unused
}

// Filter partitions items into kept and suppressed ones. With bypass set,
// every item is kept and nothing is reported as suppressed or unused.
func Filter[T Suppressible](s *Set, items []T, bypass bool) Filtered[T] {
	var out Filtered[T]
	if bypass || s == nil || len(s.Directives) == 0 {
		out.Kept = append(out.Kept, items...)
		if !bypass {
			out.Unused = s.unused(nil)
		}
		return out
	}

	used := make(map[int]map[string]bool)
	for _, item := range items {
		idx := s.disabling(item.Line(), item.RuleName())
		if idx < 0 {
			out.Kept = append(out.Kept, item)
			continue
		}
		out.Suppressed = append(out.Suppressed, item)
		if used[idx] == nil {
			used[idx] = make(map[string]bool)
		}
		used[idx][item.RuleName()] = true
	}
	out.Unused = s.unused(used)
	return out
}

func (s *Set) unused(used map[int]map[string]bool) []Unused {
	if s == nil {
		return nil
	}
	var out []Unused
	for i, d := range s.Directives {
		if d.Type != TypeDisable {
			continue
		}
		if d.AllRules() {
			if len(used[i]) == 0 {
				out = append(out, Unused{Directive: d})
			}
			continue
		}
		for _, name := range d.RuleNames() {
			if !used[i][name] {
				out = append(out, Unused{Directive: d, Rule: name})
			}
		}
	}
	return out
}
