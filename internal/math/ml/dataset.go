package ml

import (
	"fmt"
	"os"

	"github.com/drakos74/free-census/internal/model"
	"github.com/sjwhitworth/golearn/base"
)

// Instances converts the encoded rows into golearn instances.
// Every feature becomes a float attribute and the target becomes the categorical class attribute,
// with its values registered in domain order so that the class codes match the target codes.
func Instances(names []string, target model.Feature, rows []model.Encoded) (*base.DenseInstances, error) {
	attrs := make([]base.Attribute, len(names))
	for i, name := range names {
		attrs[i] = base.NewFloatAttribute(name)
	}
	class := base.NewCategoricalAttribute()
	class.SetName(target.Name)
	for _, c := range target.Categories {
		class.GetSysValFromString(c)
	}

	inst := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(attrs))
	for i, a := range attrs {
		specs[i] = inst.AddAttribute(a)
	}
	classSpec := inst.AddAttribute(class)
	if err := inst.AddClassAttribute(class); err != nil {
		return nil, fmt.Errorf("could not add class attribute: %w", err)
	}
	if err := inst.Extend(len(rows)); err != nil {
		return nil, fmt.Errorf("could not allocate %d rows: %w", len(rows), err)
	}

	for r, row := range rows {
		if len(row.Features) != len(specs) {
			return nil, fmt.Errorf("row %d has %d features instead of %d", r, len(row.Features), len(specs))
		}
		for c, v := range row.Features {
			inst.Set(specs[c], r, base.PackFloatToBytes(v))
		}
		category, ok := target.Category(row.Target)
		if !ok {
			return nil, fmt.Errorf("row %d has unknown target code %d", r, row.Target)
		}
		inst.Set(classSpec, r, class.GetSysValFromString(category))
	}
	return inst, nil
}

// Export writes the instances as a csv file that golearn can parse back.
// Any previous content of the file is replaced.
func Export(path string, inst base.FixedDataGrid) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file '%s': %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("could not close '%s': %w", path, cerr)
		}
	}()
	if err := base.SerializeInstancesToCSVStream(inst, f); err != nil {
		return fmt.Errorf("could not export instances to '%s': %w", path, err)
	}
	return nil
}
