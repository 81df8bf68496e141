package scene

import (
	"fmt"

	"github.com/matzehuels/flowpack/pkg/errors"
)

// Validate checks the scene for values a layout pass cannot use: unknown
// enum strings, negative or oversized sizes and spacing, duplicate or
// malformed ids.
func (s *Scene) Validate() error {
	if err := errors.ValidateItemCount(len(s.Items)); err != nil {
		return err
	}
	if err := s.Container.validate(); err != nil {
		return err
	}

	seen := make(map[string]int, len(s.Items))
	for i, it := range s.Items {
		if err := it.validate(i); err != nil {
			return err
		}
		if it.ID == "" {
			continue
		}
		if j, dup := seen[it.ID]; dup {
			return errors.New(errors.ErrCodeInvalidScene, "items %d and %d share id %q", j, i, it.ID)
		}
		seen[it.ID] = i
	}
	return nil
}

func (c *Container) validate() error {
	if _, err := ParseOrientation(c.Orientation); err != nil {
		return err
	}
	if _, err := ParseGravity(c.Gravity); err != nil {
		return err
	}
	if _, err := ParseSizeMode(c.WidthMode, c.Width); err != nil {
		return err
	}
	if _, err := ParseSizeMode(c.HeightMode, c.Height); err != nil {
		return err
	}
	if err := errors.ValidateExtent("container width", c.Width); err != nil {
		return err
	}
	if err := errors.ValidateExtent("container height", c.Height); err != nil {
		return err
	}
	return c.Padding.validate("container padding")
}

func (it *Item) validate(i int) error {
	if err := errors.ValidateItemID(it.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "item %d", i)
	}
	if _, err := ParseGravity(it.Gravity); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "item %d", i)
	}
	if err := errors.ValidateExtent(fmt.Sprintf("item %d width", i), it.Width); err != nil {
		return err
	}
	if err := errors.ValidateExtent(fmt.Sprintf("item %d height", i), it.Height); err != nil {
		return err
	}
	return it.Margin.validate(fmt.Sprintf("item %d margin", i))
}

func (s Spacing) validate(field string) error {
	e := s.Edges()
	for _, v := range []int{e.Top, e.Right, e.Bottom, e.Left} {
		if err := errors.ValidateExtent(field, v); err != nil {
			return err
		}
	}
	return nil
}
