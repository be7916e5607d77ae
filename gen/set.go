package gen

import "github.com/rglue/rglue/attr"

// Set drives a group of generators through the shared lifecycle. Broadcast
// order is insertion order and is stable: generators own independent files
// and share nothing but the symbol-model input, so a reproducible report
// only needs a fixed iteration order.
type Set struct {
	generators []Generator
}

// Add appends a generator. Call order defines broadcast order.
func (s *Set) Add(g Generator) {
	s.generators = append(s.generators, g)
}

// WriteBegin broadcasts the per-run preamble step.
func (s *Set) WriteBegin() {
	for _, g := range s.generators {
		g.WriteBegin()
	}
}

// WriteFunctions broadcasts one scanned source file to every generator.
func (s *Set) WriteFunctions(attributes *attr.SourceFileAttributes, verbose bool) {
	for _, g := range s.generators {
		g.WriteFunctions(attributes, verbose)
	}
}

// WriteEnd broadcasts the per-run epilogue step.
func (s *Set) WriteEnd() {
	for _, g := range s.generators {
		g.WriteEnd()
	}
}

// ChangeReport lists the target paths a commit actually touched.
type ChangeReport struct {
	Updated []string
	Removed []string
}

// Commit broadcasts Commit and collects which files were written or
// deleted. The first error aborts: a generation run either completes or
// fails as a whole, there is no partial retry.
func (s *Set) Commit(includes []string) (ChangeReport, error) {
	var report ChangeReport
	for _, g := range s.generators {
		action, err := g.Commit(includes)
		if err != nil {
			return report, err
		}
		switch action {
		case CommitWritten:
			report.Updated = append(report.Updated, g.TargetFile())
		case CommitRemoved:
			report.Removed = append(report.Removed, g.TargetFile())
		}
	}
	return report, nil
}

// Remove broadcasts Remove and returns the paths actually deleted.
func (s *Set) Remove() ([]string, error) {
	var removed []string
	for _, g := range s.generators {
		ok, err := g.Remove()
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, g.TargetFile())
		}
	}
	return removed, nil
}
