package loader

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-json2beamer/pkg/bank"
)

// Merge concatenates the banks in argument order, stable-sorts the records by
// their original id (absent ids count as 0, ties keep file order then in-file
// order) and renumbers them 1..N. Input banks and records are left untouched.
func Merge(banks ...bank.Bank) ([]bank.Record, error) {
	merged, _, err := MergeWithOrigins(banks...)
	return merged, err
}

// MergeWithOrigins is Merge that also reports, for every merged record, the
// bank and id it came from. origins[i] describes merged[i].
func MergeWithOrigins(banks ...bank.Bank) (merged []bank.Record, origins []bank.Origin, err error) {
	type entry struct {
		id     int
		record bank.Record
		origin bank.Origin
	}

	var entries []entry
	for _, b := range banks {
		for i, record := range b.Records() {
			id, ok := record.ID()
			if !ok {
				return nil, nil, &bank.SchemaError{
					Source:  b.Location(),
					Field:   fmt.Sprintf("[%d].id", i),
					Message: fmt.Sprintf("must be an integer within ±%d", bank.MaxID),
				}
			}
			entries = append(entries, entry{
				id:     id,
				record: record,
				origin: bank.Origin{Source: b.Location(), Index: i, ID: id},
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].id < entries[j].id
	})

	merged = make([]bank.Record, len(entries))
	origins = make([]bank.Origin, len(entries))
	for i, e := range entries {
		clone := e.record.Clone()
		clone[bank.IDKey] = float64(i + 1)
		merged[i] = clone
		origins[i] = e.origin
	}
	return merged, origins, nil
}
