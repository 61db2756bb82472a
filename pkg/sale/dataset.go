package sale

import (
	"github.com/RoaringBitmap/roaring"
	"github.com/shopspring/decimal"
)

// Dataset holds an ordered, read-only collection of sales.
// Every categorical field is indexed as value -> bitmap of rows.
type Dataset struct {
	records []Record
	index   map[Field]map[string]*roaring.Bitmap
	values  map[Field][]string
	total   decimal.Decimal
}

// NewDataset normalizes the records, numbers them by position and builds the field index.
// The input slice is copied.
func NewDataset(records []Record) *Dataset {
	d := &Dataset{
		records: make([]Record, len(records)),
		index:   make(map[Field]map[string]*roaring.Bitmap, len(Fields)),
		values:  make(map[Field][]string, len(Fields)),
		total:   decimal.Zero,
	}
	for _, f := range Fields {
		d.index[f] = make(map[string]*roaring.Bitmap)
	}

	for i, r := range records {
		r = Normalize(r)
		r.Row = i
		d.records[i] = r
		d.total = d.total.Add(r.Money)

		for _, f := range Fields {
			v := r.Value(f)
			rows, ok := d.index[f][v]
			if !ok {
				rows = roaring.New()
				d.index[f][v] = rows
				d.values[f] = append(d.values[f], v)
			}
			rows.Add(uint32(i))
		}
	}
	return d
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Record returns the record at the given row
func (d *Dataset) Record(row int) Record {
	return d.records[row]
}

// Records returns a copy of all records in load order
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Total returns the revenue over the whole dataset
func (d *Dataset) Total() decimal.Decimal {
	return d.total
}

// Values returns the distinct values observed for a field, in first-seen order
func (d *Dataset) Values(f Field) []string {
	vals := d.values[f]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// Rows returns the rows whose field equals value. The bitmap is a copy.
func (d *Dataset) Rows(f Field, value string) *roaring.Bitmap {
	rows, ok := d.index[f][value]
	if !ok {
		return roaring.New()
	}
	return rows.Clone()
}

// AllRows returns a bitmap holding every row of the dataset
func (d *Dataset) AllRows() *roaring.Bitmap {
	rows := roaring.New()
	rows.AddRange(0, uint64(len(d.records)))
	return rows
}
