package consolidate

import (
	"github.com/MikeSquared-Agency/strata/internal/relation"
	"github.com/MikeSquared-Agency/strata/internal/taxonomy"
)

// Accumulator is the shared aggregate state analysis passes append into
// while the scheduler walks the corpus. It only collects; every merge,
// dedup and ranking decision waits for Consolidate. Append order is
// preserved, which is what first-seen tie-breaking keys off.
type Accumulator struct {
	taxOrder  []string
	occs      map[string][]taxonomy.Occurrence
	relations []relation.Record
}

func NewAccumulator() *Accumulator {
	return &Accumulator{occs: make(map[string][]taxonomy.Occurrence)}
}

// AddOccurrences appends one classification batch under its taxonomy name.
func (a *Accumulator) AddOccurrences(tax string, occs []taxonomy.Occurrence) {
	if len(occs) == 0 {
		return
	}
	if _, ok := a.occs[tax]; !ok {
		a.taxOrder = append(a.taxOrder, tax)
	}
	a.occs[tax] = append(a.occs[tax], occs...)
}

// AddRelations appends extracted relation records.
func (a *Accumulator) AddRelations(recs []relation.Record) {
	a.relations = append(a.relations, recs...)
}

// Taxonomies lists taxonomy names in first-seen order.
func (a *Accumulator) Taxonomies() []string { return a.taxOrder }

// Occurrences returns the raw append-order occurrence list for one taxonomy.
func (a *Accumulator) Occurrences(tax string) []taxonomy.Occurrence { return a.occs[tax] }

// Relations returns all relation records in append order.
func (a *Accumulator) Relations() []relation.Record { return a.relations }
