package query

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/example/coffee-sales/pkg/sale"
)

// FilterSpec maps a field to the values selected for it.
// A missing or empty value list places no restriction on that field.
type FilterSpec map[sale.Field][]string

// IsEmpty reports whether no field is restricted
func (s FilterSpec) IsEmpty() bool {
	for _, vals := range s {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// View is a filtered subset of a dataset, kept as a set of row numbers
type View struct {
	dataset *sale.Dataset
	rows    *roaring.Bitmap
}

// FullView returns a view over every record of the dataset
func FullView(d *sale.Dataset) *View {
	return &View{dataset: d, rows: d.AllRows()}
}

// Len returns the number of records in the view
func (v *View) Len() int {
	return int(v.rows.GetCardinality())
}

// Rows returns the dataset rows of the view in ascending order
func (v *View) Rows() []int {
	out := make([]int, 0, v.Len())
	it := v.rows.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Records returns the records of the view in dataset order
func (v *View) Records() []sale.Record {
	rows := v.Rows()
	out := make([]sale.Record, len(rows))
	for i, row := range rows {
		out[i] = v.dataset.Record(row)
	}
	return out
}

// ApplyFilters returns the view of records matching every restricted field.
// Fields are AND-combined; values within a field are OR-combined.
func ApplyFilters(d *sale.Dataset, spec FilterSpec) *View {
	if spec.IsEmpty() {
		return FullView(d)
	}

	rows := d.AllRows()

	for _, f := range sale.Fields {
		selected := spec[f]
		if len(selected) == 0 {
			continue
		}

		matching := roaring.New()
		for _, value := range selected {
			matching.Or(d.Rows(f, value))
		}
		rows.And(matching)
	}

	return &View{dataset: d, rows: rows}
}
